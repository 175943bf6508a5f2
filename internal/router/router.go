package router

import (
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/config"
	"github.com/martinmorag/manejo-de-empresas/internal/handler"
	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"
	"github.com/martinmorag/manejo-de-empresas/internal/service"
	"github.com/martinmorag/manejo-de-empresas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	intentoRepo := repository.NewLoginAttemptRepository(db)
	negocioRepo := repository.NewNegocioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	deudaRepo := repository.NewDeudaRepository(db)
	anuncioRepo := repository.NewAnuncioRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, intentoRepo, dispatcher, cfg)
	negocioSvc := service.NewNegocioService(negocioRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, deudaRepo, clienteRepo, productoRepo)
	deudaSvc := service.NewDeudaService(deudaRepo, ventaRepo)
	anuncioSvc := service.NewAnuncioService(anuncioRepo)
	reporteSvc := service.NewReporteService(reporteRepo, usuarioRepo, productoRepo)
	perfilSvc := service.NewPerfilService(usuarioRepo)
	soporteSvc := service.NewSoporteService(dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	negocioH := handler.NewNegocioHandler(negocioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	deudasH := handler.NewDeudasHandler(deudaSvc)
	anunciosH := handler.NewAnunciosHandler(anuncioSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	perfilH := handler.NewPerfilHandler(perfilSvc)
	soporteH := handler.NewSoporteHandler(soporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	tenantMW := middleware.TenantAuth(usuarioRepo)

	// Announcement reads are anonymous; publication and finalization
	// require a valid token.
	anuncio := r.Group("/v1/anuncio")
	{
		anuncio.GET("", anunciosH.Listar)
		anuncio.GET("/disponibles", anunciosH.Disponibles)
		anuncio.POST("", jwtMW, anunciosH.Crear)
		anuncio.PUT("/:id/finalizar", jwtMW, anunciosH.Finalizar)
	}

	// Profile endpoints work before a negocio is assigned
	perfil := r.Group("/v1/perfil", jwtMW)
	{
		perfil.GET("", perfilH.Obtener)
		perfil.PUT("", perfilH.Actualizar)
		perfil.PUT("/seguridad", perfilH.ActualizarSeguridad)
	}

	// Tenant-scoped routes: every handler below sees a resolved TenantContext
	v1 := r.Group("/v1", jwtMW, tenantMW)
	{
		v1.GET("/negocio/iva", negocioH.IvaPercentage)

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		venta := v1.Group("/venta")
		{
			venta.POST("", ventasH.Crear)
			venta.GET("", ventasH.Listar)
			venta.GET("/ultimas", reportesH.UltimasMensuales)
			venta.GET("/por_producto", reportesH.PorProducto)
			venta.GET("/por_metodo_pago", reportesH.PorMetodoPago)
			venta.GET("/por_negocio", reportesH.PorNegocio)
			venta.GET("/:id", ventasH.ObtenerPorID)
			venta.PUT("/:id", ventasH.Actualizar)
			venta.DELETE("/:id", ventasH.Eliminar)
		}

		deuda := v1.Group("/deuda")
		{
			deuda.GET("", deudasH.Listar)
			deuda.POST("/:id/saldar", deudasH.Saldar)
		}

		overview := v1.Group("/overview")
		{
			overview.GET("", reportesH.Overview)
			overview.GET("/revenue", reportesH.NetRevenue)
			overview.GET("/accesos", reportesH.AccesosDirectos)
			overview.PUT("/accesos", reportesH.GuardarAccesosDirectos)
		}

		v1.POST("/soporte", soporteH.Enviar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
