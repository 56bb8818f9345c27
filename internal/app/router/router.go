package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	ppehandler "ppe_backend/internal/feature/ppedetection/transport/handler"
	"ppe_backend/internal/feature/ppedetection/transport/web"
	platformhandler "ppe_backend/internal/platform/http/handler"
)

// ServiceName は /healthz で返すサービス名です。
const ServiceName = "ppe-detection"

// Options はルータの任意設定です。
type Options struct {
	AllowedOrigins []string
	Pprof          bool
}

func NewRouter(ppe *ppehandler.PPEDetectionHandler, opts Options) *gin.Engine {
	r := gin.Default()

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Content-Length", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.SetHTMLTemplate(web.Templates())

	// 導通確認用
	health := platformhandler.Health(ServiceName)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// アップロード画面
	r.GET("/", ppe.Index)

	v1 := r.Group("/v1")
	{
		v1.POST("/ppe/detect", ppe.Detect)
	}

	if opts.Pprof {
		pprof.Register(r)
	}

	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })

	return r
}
