package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/config"
	"github.com/mentisiq/funnel-api/internal/infra/database"
	"github.com/mentisiq/funnel-api/internal/infra/http/handlers"
	"github.com/mentisiq/funnel-api/internal/infra/http/middleware"
	"github.com/mentisiq/funnel-api/internal/infra/integration/mercadopago"
	"github.com/mentisiq/funnel-api/internal/infra/mail"
	"github.com/mentisiq/funnel-api/internal/infra/queue"
	"github.com/mentisiq/funnel-api/internal/quiz"
	"github.com/mentisiq/funnel-api/internal/session"
	"github.com/mentisiq/funnel-api/internal/usecase"
)

func main() {
	godotenv.Load()
	config.SetupLogger()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logrus.Fatalf("❌ Erro ao conectar no banco: %v", err)
	}
	defer db.Close()

	// QUIZ_BANK_PATH troca o banco de questões embutido por um arquivo YAML
	bank, err := quiz.LoadBank(os.Getenv("QUIZ_BANK_PATH"))
	if err != nil {
		logrus.Fatalf("❌ Erro ao carregar banco de questões: %v", err)
	}

	// RabbitMQ é opcional: sem broker o funil funciona, só não dispara o
	// e-mail de relatório pronto
	var rabbitMQ *queue.RabbitMQ
	var producer queue.NotificationProducerInterface
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			logrus.Fatalf("❌ Erro ao conectar no RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	} else {
		logrus.Warn("⚠️ RABBITMQ_HOST não configurado; notificações desativadas")
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	resultRepo := database.NewTestResultRepository(db)

	// 2. Gateways e Adapters
	mpClient := mercadopago.NewClient(
		os.Getenv("MERCADO_PAGO_ACCESS_TOKEN"), os.Getenv("MERCADO_PAGO_URL"),
	)
	mailSender := mail.NewEmailSender(
		os.Getenv("SMTP_HOST"), 587, os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"), os.Getenv("SMTP_FROM"),
	)

	// 3. Worker (consome a fila e envia o e-mail de relatório pronto)
	if rabbitMQ != nil {
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender, os.Getenv("PUBLIC_BASE_URL"))
		go worker.Start(queue.QueueName)
	}

	// 4. Sessões de visitante
	sessions := session.NewStore(2 * time.Hour)

	// 5. UseCases
	captureLeadUC := usecase.NewCaptureLeadUseCase(leadRepo)
	resolveLeadUC := usecase.NewResolveLeadUseCase(leadRepo)
	submitQuizUC := usecase.NewSubmitQuizUseCase(
		resultRepo, bank, os.Getenv("HOTMART_CHECKOUT_URL"),
	)
	applyPaymentUC := usecase.NewApplyPaymentEventUseCase(leadRepo, producer)
	awaitUC := usecase.NewAwaitConfirmationUseCase(leadRepo, resolveLeadUC)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(captureLeadUC)
	quizHandler := handlers.NewQuizHandler(bank, submitQuizUC, sessions)
	resultsHandler := handlers.NewResultsHandler(resolveLeadUC, leadRepo, resultRepo, sessions)
	paymentHandler := handlers.NewPaymentHandler(leadRepo, awaitUC, sessions)
	hotmartHandler := handlers.NewHotmartWebhookHandler(applyPaymentUC)
	mpHandler := handlers.NewMercadoPagoWebhookHandler(mpClient, applyPaymentUC)
	adminHandler := handlers.NewAdminHandler(leadRepo)

	healthHandler := handlers.NewHealthHandler(db, nil)
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbitMQ.Conn)
	}

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", handlers.SessionTokenHeader},
	}))

	r.Post("/leads", leadHandler.CaptureLead)

	r.Post("/quiz/start", quizHandler.Start)
	r.Get("/quiz/{quizId}", quizHandler.Current)
	r.Post("/quiz/{quizId}/answer", quizHandler.Answer)
	r.Post("/quiz/{quizId}/previous", quizHandler.Previous)

	r.Get("/resultado", resultsHandler.Handle)
	r.Get("/payments/{leadId}/status", paymentHandler.HandleGetStatus)
	r.Get("/obrigado/aguardar", paymentHandler.HandleWait)

	r.Post("/webhooks/hotmart", hotmartHandler.Handle)
	r.Post("/webhooks/mercadopago", mpHandler.Handle)

	r.Get("/admin/leads", adminHandler.HandleListLeads)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("🔥 Server MentisIQ rodando na porta :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.Fatalf("❌ Erro no servidor HTTP: %v", err)
	}
}
