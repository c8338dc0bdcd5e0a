package router

import (
	"github.com/gin-gonic/gin"

	"notaryflow/internal/handler"
	"notaryflow/internal/middleware"
	"notaryflow/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	authSvc service.AuthService,
	wizardH *handler.WizardHandler,
	uploadH *handler.UploadHandler,
	submissionH *handler.SubmissionHandler,
	signingH *handler.SigningHandler,
	authH *handler.AuthHandler,
	downloadH *handler.DownloadHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Document type catalog
	v1.GET("/document-types", wizardH.ListTypes)

	// Wizard flow (session-scoped via X-Session-ID)
	wizard := v1.Group("/wizard")
	wizard.GET("", wizardH.GetState)
	wizard.DELETE("", wizardH.Reset)
	wizard.GET("/steps/:step", wizardH.GetStep)
	wizard.PUT("/steps/:step", wizardH.UpdateStep)
	wizard.POST("/document-type", wizardH.SelectType)
	wizard.POST("/document-type/back", wizardH.Back)
	wizard.GET("/form", wizardH.GetForm)
	wizard.PUT("/form", wizardH.UpdateForm)
	wizard.GET("/form/validation", wizardH.ValidateForm)
	wizard.POST("/signing/reset", wizardH.EnterSigningStep)

	// Custom document upload
	v1.POST("/uploads", uploadH.Upload)

	// Submission finalization and signing
	submissions := v1.Group("/submissions")
	submissions.POST("/esign", submissionH.FinalizeESign)
	submissions.POST("/notary", submissionH.FinalizeNotary)
	submissions.GET("/:id", submissionH.Get)
	submissions.POST("/:id/sign", signingH.Sign)

	// Retrieval authentication
	v1.POST("/auth/retrieve", authH.Authenticate)

	// Artifact download, gated by the token issued at authentication
	documents := v1.Group("/documents")
	documents.Use(middleware.DownloadAuth(authSvc))
	documents.GET("/download", downloadH.Download)

	// Back-office reporting
	admin := v1.Group("/admin")
	admin.GET("/submissions", reportH.List)
	admin.GET("/submissions/export.csv", reportH.ExportCSV)
	admin.GET("/submissions/export.xlsx", reportH.ExportXLSX)

	return r
}
