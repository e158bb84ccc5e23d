package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grupolocar/erp-server/internal/admin"
	"github.com/grupolocar/erp-server/internal/anexos"
	"github.com/grupolocar/erp-server/internal/auth"
	"github.com/grupolocar/erp-server/internal/broker"
	"github.com/grupolocar/erp-server/internal/cep"
	"github.com/grupolocar/erp-server/internal/config"
	"github.com/grupolocar/erp-server/internal/db"
	"github.com/grupolocar/erp-server/internal/handlers"
	"github.com/grupolocar/erp-server/internal/repository"
)

func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			// conecta somente o necessário para o seed
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			database := client.Database(cfg.MongoDB)
			ctx := context.Background()
			if err := admin.SeedUsuarios(ctx, repository.NewUserRepository(database), cfg.AdminPassword, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			if err := admin.SeedFuncionarios(ctx, repository.NewFuncionarioRepository(database), slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// conecta Mongo
	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	database := client.Database(cfg.MongoDB)

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbitmq connect error: %v", err)
	}
	defer pub.Close()

	funcionarios := repository.NewFuncionarioRepository(database)
	perfil := repository.NewPerfilIdealRepository(database)
	clientes := repository.NewClienteRepository(database)
	filiais := repository.NewFilialRepository(database)
	fornecedores := repository.NewFornecedorRepository(database)
	tiposFornecedor := repository.NewTipoFornecedorRepository(database)
	psl := repository.NewPslRepository(database)
	usuarios := repository.NewUserRepository(database)
	logs := repository.NewLogRepository(database)
	agendaRepo := repository.NewAgendaRepository(database)

	if cfg.SyncOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		for nome, idx := range map[string]interface {
			EnsureIndexes(ctx context.Context) error
		}{
			"funcionarios": funcionarios,
			"clientes":     clientes,
			"filiais":      filiais,
			"fornecedores": fornecedores,
			"tipos":        tiposFornecedor,
			"psl":          psl,
			"usuarios":     usuarios,
			"logs":         logs,
			"agenda":       agendaRepo,
		} {
			if err := idx.EnsureIndexes(ctx); err != nil {
				cancel()
				log.Fatalf("ensure indexes (%s): %v", nome, err)
			}
		}
		cancel()
		slog.Info("indexes_synced")
	}

	store, err := anexos.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("uploads dir error: %v", err)
	}

	fh := handlers.NewFuncionarioHandler(funcionarios, perfil, pub, store, cep.NewClient(cfg.ViaCEPBaseURL))
	ch := handlers.NewClienteHandler(clientes, pub)
	flh := handlers.NewFilialHandler(filiais, pub)
	foh := handlers.NewFornecedorHandler(fornecedores, tiposFornecedor, pub)
	ph := handlers.NewPslHandler(psl, pub)
	uh := handlers.NewUserHandler(usuarios, cfg.JWTSecret, cfg.JWTExpiration)
	lh := handlers.NewLogHandler(logs)
	ah := handlers.NewAgendaHandler(agendaRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handlers.Health)

	// RH; as rotas fixas vêm antes do prefixo /{id}
	mux.HandleFunc("/api/funcionarios", fh.Funcionarios)
	mux.HandleFunc("/api/funcionarios/filtro", fh.Filtro)
	mux.HandleFunc("/api/funcionarios/funcionarios-status/", fh.PorStatusCNH)
	mux.HandleFunc("/api/funcionarios/estatisticas-cnh", fh.EstatisticasCNH)
	mux.HandleFunc("/api/funcionarios/estatisticas", fh.Estatisticas)
	mux.HandleFunc("/api/funcionarios/visao", fh.Visao)
	mux.HandleFunc("/api/funcionarios/cep/", fh.BuscarCEP)
	mux.HandleFunc("/api/funcionarios/com-anexos", fh.ComAnexos)
	mux.HandleFunc("/api/funcionarios/com-anexos/", fh.ComAnexosByID)
	mux.HandleFunc("/api/funcionarios/perfil-ideal", fh.PerfilIdeal)
	mux.HandleFunc("/api/funcionarios/perfil-ideal/config", fh.PerfilIdealConfig)
	mux.HandleFunc("/api/funcionarios/", fh.FuncionarioByID)

	// cadastros comerciais
	mux.HandleFunc("/api/clientes", ch.Clientes)
	mux.HandleFunc("/api/clientes/", ch.ClienteByID)
	mux.HandleFunc("/api/filiais", flh.Filiais)
	mux.HandleFunc("/api/filiais/", flh.FilialByID)
	mux.HandleFunc("/api/fornecedores", foh.Fornecedores)
	mux.HandleFunc("/api/fornecedores/tipos", foh.TiposFornecedor)
	mux.HandleFunc("/api/fornecedores/tipos/", foh.TipoFornecedorByID)
	// apelido usado pelo front antigo
	mux.HandleFunc("/api/tipoFornecedor", foh.TiposFornecedor)
	mux.HandleFunc("/api/tipoFornecedor/", foh.TipoFornecedorByID)
	mux.HandleFunc("/api/fornecedores/", foh.FornecedorByID)

	// PSL e agenda
	mux.HandleFunc("/api/psl", ph.Ocorrencias)
	mux.HandleFunc("/api/psl/", ph.OcorrenciaByID)
	mux.HandleFunc("/api/agenda", ah.Agenda)
	mux.HandleFunc("/api/agenda/", ah.AgendaByID)

	// acesso
	mux.HandleFunc("/api/auth/login", uh.Login)
	mux.Handle("/api/auth/me", auth.Middleware(cfg.JWTSecret, http.HandlerFunc(uh.Me)))
	mux.Handle("/api/usuarios", auth.Middleware(cfg.JWTSecret, auth.RequireRole("admin", http.HandlerFunc(uh.Usuarios))))
	mux.Handle("/api/usuarios/", auth.Middleware(cfg.JWTSecret, auth.RequireRole("admin", http.HandlerFunc(uh.UsuarioByID))))

	// trilha de uso do frontend
	mux.HandleFunc("/api/logs", lh.Logs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http_request",
			"method", r.Method, "path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
