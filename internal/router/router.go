package router

import (
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/config"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/handler"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/infra"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/middleware"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/service"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, printer *infra.PrinterClient) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	transacaoRepo := repository.NewTransacaoRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, catalogoRepo, rdb)
	resumoSvc := service.NewResumoService(caixaRepo, transacaoRepo, log.Logger)
	caixaSvc := service.NewCaixaService(caixaRepo, resumoSvc, dispatcher, cfg.AdminEmail)
	estoqueSvc := service.NewEstoqueService(estoqueRepo, produtoRepo)
	vendaSvc := service.NewVendaService(transacaoRepo, caixaRepo, estoqueSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	vendasH := handler.NewVendaHandler(vendaSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	resumoH := handler.NewResumoHandler(resumoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, printer))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operadores := middleware.RequirePerfil("operador", "administrador")
	admin := middleware.RequirePerfil("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		caixa := v1.Group("/caixa", operadores)
		{
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.POST("/fechar", caixaH.Fechar)
			caixa.GET("/estado", caixaH.VerificarEstado)
			caixa.GET("/ativo", caixaH.Ativo)
		}

		v1.POST("/vendas", operadores, vendasH.Registrar)
		v1.POST("/vendas/:id/cancelar", operadores, vendasH.Cancelar)

		estoque := v1.Group("/estoque")
		{
			estoque.GET("", operadores, estoqueH.Listar)
			estoque.GET("/:id/movimentacoes", operadores, estoqueH.Movimentacoes)
			estoque.POST("/movimentar", admin, estoqueH.Movimentar)
		}

		resumo := v1.Group("/resumo")
		{
			resumo.GET("/caixa/:id", operadores, resumoH.ResumoDoCaixa)
			resumo.GET("/geral", admin, resumoH.ResumoGeral)
		}

		// Produtos — leitura para todos os autenticados, escrita só admin
		v1.GET("/produtos", operadores, produtosH.Listar)
		v1.GET("/produtos/:id", operadores, produtosH.Obter)
		v1.GET("/produtos/:id/preco", operadores, produtosH.ConsultarPreco)
		prods := v1.Group("/produtos", admin)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
		}

		v1.GET("/categorias", operadores, produtosH.Categorias)
		v1.GET("/marcas", operadores, produtosH.Marcas)
		v1.GET("/unidades", operadores, produtosH.Unidades)
		v1.GET("/metodos-pagamento", operadores, produtosH.MetodosPagamento)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
