package router

import (
	"time"

	"optigest/internal/cache"
	"optigest/internal/config"
	"optigest/internal/handler"
	"optigest/internal/middleware"
	"optigest/internal/repository"
	"optigest/internal/service"

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
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	selectCache := cache.New(rdb, cfg.CacheTTL())

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(clienteRepo, selectCache)
	recetaSvc := service.NewRecetaService(recetaRepo, clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, selectCache)
	insumoSvc := service.NewInsumoService(insumoRepo, proveedorRepo, selectCache)
	compraSvc := service.NewCompraService(compraRepo, insumoRepo, proveedorRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, recetaRepo, insumoRepo, proveedorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Everything under /v1 runs inside a tenant. Plain GET and /avanzado share
	// a handler: with no query params the advanced filter is the simple list.
	v1 := r.Group("/v1", middleware.OpticaID())
	{
		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/avanzado", clientesH.Listar)
			clientes.GET("/select", clientesH.Select)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PATCH("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		recetas := v1.Group("/recetas")
		{
			recetas.POST("", recetasH.Crear)
			recetas.GET("", recetasH.Listar)
			recetas.GET("/avanzado", recetasH.Listar)
			recetas.GET("/:id", recetasH.ObtenerPorID)
			recetas.PATCH("/:id", recetasH.Actualizar)
			recetas.PATCH("/:id/estado", recetasH.ActualizarEstado)
		}

		proveedores := v1.Group("/proveedores")
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/avanzado", proveedoresH.Listar)
			proveedores.GET("/select", proveedoresH.Select)
			proveedores.GET("/:id", proveedoresH.ObtenerPorID)
			proveedores.PATCH("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Eliminar)
		}

		insumos := v1.Group("/insumos")
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/avanzado", insumosH.Listar)
			insumos.GET("/select", insumosH.Select)
			insumos.GET("/:id", insumosH.ObtenerPorID)
			insumos.PATCH("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Eliminar)
		}

		compras := v1.Group("/compras-insumos")
		{
			compras.POST("", comprasH.Crear)
			compras.GET("", comprasH.Listar)
			compras.GET("/avanzado", comprasH.Listar)
			compras.GET("/:id", comprasH.ObtenerPorID)
			compras.PATCH("/:id", comprasH.Actualizar)
			compras.PATCH("/:id/anular", comprasH.Anular)
		}

		pedidos := v1.Group("/pedidos-laboratorio")
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/avanzado", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.ObtenerPorID)
			pedidos.PATCH("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.ActualizarEstado)
			pedidos.PATCH("/:id/recepcion", pedidosH.Recepcionar)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
