// @title           PDF Insight API
// @version         1.0
// @description     This API handles asynchronous document summarization and Q&A generation
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akolanti/PDFInsight/internal/analysis"
	"github.com/akolanti/PDFInsight/internal/analysis/llm"
	"github.com/akolanti/PDFInsight/internal/analysis/llm/gemini"
	"github.com/akolanti/PDFInsight/internal/analysis/llm/openaiLLM"
	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/data/store"
	jobmodel "github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/akolanti/PDFInsight/internal/handlers"
	"github.com/akolanti/PDFInsight/internal/job"
	"github.com/akolanti/PDFInsight/internal/server"
	"github.com/akolanti/PDFInsight/internal/worker"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	godotenv.Load() //optional .env, real env wins
	config.ReloadEnv()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//no LLM key means nothing here can do its job, refuse to start
	if !config.HasLLMCredential() {
		logger.Fatal("Missing API key for LLM provider", "provider", config.LLMProviderName)
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
		ResultStore:       store.GetRedisResultStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.ResultStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.ResultStore = store.InitInMemoryResultStore()
	}
	service := job.InitJobService(serviceConfig)

	llmProvider := selectProvider(serviceContext)
	if llmProvider == nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "provider", config.LLMProviderName)
		return
	}

	analysisService := analysis.NewService(llmProvider, serviceConfig.ResultStore)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, analysisService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectProvider(ctx context.Context) llm.Provider {
	if config.LLMProviderName == "openai" {
		return openaiLLM.GetOpenAIClient(config.OpenAIAPIKey, config.OpenAIModelName)
	}
	return gemini.GetGeminiClient(ctx, config.GoogleAPIKey, config.GeminiModelName)
}
