package main

import (
	"context"
	"os"

	"insuretrack/internal/domain/sqlite"
	"insuretrack/internal/domain/sqlite/repository"
	"insuretrack/internal/http/handler"
	authmw "insuretrack/internal/http/middleware"
	cognitoclient "insuretrack/internal/infrastructure/aws/cognito"
	"insuretrack/internal/infrastructure/aws/storage"
	"insuretrack/internal/infrastructure/email"
	"insuretrack/internal/service"
	"insuretrack/internal/service/jobs"
	"insuretrack/internal/utils"
	"insuretrack/internal/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/insuretrack/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Init cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		panic(err)
	}

	if err := utils.InitJWKS(os.Getenv("AWS_COGNITO_REGION"), os.Getenv("AWS_COGNITO_POOL_ID")); err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	// Init SES mailer (falls back to a logging mock without EMAIL_FROM)
	mailer, err := email.NewMailer()
	if err != nil {
		panic(err)
	}

	portalBaseURL := os.Getenv("PORTAL_BASE_URL")

	// Getting repos
	coiRepo := repository.NewCOIRepository(db)
	subRepo := repository.NewProjectSubRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	programRepo := repository.NewProgramRepository(db)
	reqRepo := repository.NewRequirementRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	brokerRepo := repository.NewBrokerRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, cogClient)
	coiService := service.NewCOIService(coiRepo, subRepo, projectRepo, contractorRepo, s3Client, mailer, validate, portalBaseURL)
	contractorService := service.NewContractorService(contractorRepo, validate)
	projectService := service.NewProjectService(projectRepo, subRepo, contractorRepo, brokerRepo, coiService, validate)
	programService := service.NewProgramService(programRepo, reqRepo, subRepo, projectRepo, validate)
	catalogService := service.NewCatalogService(tradeRepo, brokerRepo, validate)
	reminderService := service.NewReminderService(coiRepo, subRepo, projectRepo, contractorRepo, mailer, portalBaseURL)

	// Getting handlers
	coiRoutes := handler.NewCOIDefault(coiService)
	contractorRoutes := handler.NewContractorDefault(contractorService)
	projectRoutes := handler.NewProjectDefault(projectService)
	programRoutes := handler.NewProgramDefault(programService)
	catalogRoutes := handler.NewCatalogDefault(catalogService)
	publicRoutes := handler.NewPublicDefault(coiService)
	reminderRoutes := handler.NewReminderDefault(reminderService)
	userRoutes := handler.NewUserDefault(userService)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})

	// Broker portal, reached by emailed access link. No session.
	public := e.Group("/public")
	public.GET("/cois/:token", publicRoutes.GetCOI)
	public.PATCH("/cois/:token", publicRoutes.SubmitCOI)
	public.POST("/cois/:token/upload", publicRoutes.UploadCOI)

	// Account endpoints (no session yet)
	e.POST("/api/users", userRoutes.CreateUser)
	e.POST("/api/users/check-email", userRoutes.CheckEmail)
	e.POST("/api/users/login", userRoutes.CreateLogin)
	e.POST("/api/users/logout", userRoutes.Logout)
	e.POST("/api/users/confirms", userRoutes.ConfirmSignup)
	e.POST("/api/users/confirms/resend", userRoutes.ResendConfirmation)

	api := e.Group("/api", auth)
	api.GET("/users", userRoutes.GetUsers)

	// Contractors
	api.GET("/contractors", contractorRoutes.GetContractors)
	api.GET("/contractors/:id", contractorRoutes.GetContractor)
	api.POST("/contractors", contractorRoutes.CreateContractor)
	api.PATCH("/contractors/:id", contractorRoutes.UpdateContractor)
	api.DELETE("/contractors/:id", contractorRoutes.DeleteContractor)

	// Projects
	api.GET("/projects", projectRoutes.GetProjects)
	api.GET("/projects/:id", projectRoutes.GetProject)
	api.POST("/projects", projectRoutes.CreateProject)
	api.PATCH("/projects/:id", projectRoutes.UpdateProject)
	api.DELETE("/projects/:id", projectRoutes.DeleteProject)
	api.GET("/projects/:id/subcontractors", projectRoutes.GetProjectSubs)
	api.POST("/projects/:id/subcontractors", projectRoutes.AddSubcontractor)

	// Insurance programs and requirement rules
	api.GET("/programs", programRoutes.GetPrograms)
	api.POST("/programs", programRoutes.CreateProgram)
	api.GET("/programs/:id/requirements", programRoutes.GetRequirements)
	api.POST("/programs/:id/requirements", programRoutes.CreateRequirement)
	api.DELETE("/programs/:id/requirements/:reqId", programRoutes.DeleteRequirement)
	api.GET("/programs/:id/match", programRoutes.MatchRequirements)

	// COIs
	api.GET("/cois", coiRoutes.GetCOIs)
	api.GET("/cois/:id", coiRoutes.GetCOI)
	api.POST("/cois", coiRoutes.CreateCOI)
	api.DELETE("/cois/:id", coiRoutes.DeleteCOI)

	// Lookup tables
	api.GET("/trades", catalogRoutes.GetTrades)
	api.POST("/trades", catalogRoutes.CreateTrade)
	api.DELETE("/trades/:id", catalogRoutes.DeleteTrade)
	api.GET("/brokers", catalogRoutes.GetBrokers)
	api.POST("/brokers", catalogRoutes.CreateBroker)
	api.DELETE("/brokers/:id", catalogRoutes.DeleteBroker)

	// Admin review surface
	admin := api.Group("/admin", authmw.RequireAdmin())
	admin.POST("/cois/:id/approve", coiRoutes.ApproveCOI)
	admin.POST("/reminders/run", reminderRoutes.RunReminders)

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	// Daily reminder pass
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderJob := jobs.NewReminderJob(reminderService)
	go reminderJob.Start(ctx)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("password", validators.PasswordValidator)
	_ = validate.RegisterValidation("usstate", validators.USState)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}
