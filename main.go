package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"properties-api/config"
	"properties-api/controllers"
	"properties-api/domain"
	"properties-api/middleware"
	"properties-api/publishers"
	"properties-api/repositories"
	"properties-api/services"
	"properties-api/storage"
)

func main() {
	// ============================================
	// 1. CONFIGURACIÓN - Leer variables de entorno
	// ============================================
	// godotenv carga el archivo .env si existe (en Docker no hace falta)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	log.Println("🔧 Configuración cargada:")
	log.Printf("   - Mongo: %s / %s", cfg.MongoURI, cfg.MongoDB)
	log.Printf("   - MySQL: %s:%s / %s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	log.Printf("   - Memcached: %s", cfg.MemcachedHost)

	// ============================================
	// 2. CONECTAR A MONGODB (propiedades, leads, contactos)
	// ============================================
	log.Println("📡 Conectando a MongoDB...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("❌ Failed to ping MongoDB:", err)
	}
	mongoDB := mongoClient.Database(cfg.MongoDB)
	log.Println("✅ Conexión a MongoDB exitosa")

	// ============================================
	// 3. CONECTAR A MYSQL (cuentas del personal)
	// ============================================
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	log.Println("📡 Conectando a MySQL...")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	log.Println("✅ Conexión a MySQL exitosa")

	// GORM crea automáticamente la tabla "users" si no existe
	log.Println("🔄 Ejecutando migraciones...")
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("❌ Failed to migrate database:", err)
	}
	log.Println("✅ Tablas creadas/actualizadas")

	// ============================================
	// 4. RABBITMQ - eventos de propiedades
	// ============================================
	// Si RabbitMQ no está disponible el servicio arranca igual,
	// los eventos simplemente no se publican
	var publisher publishers.EventPublisher
	rabbitPublisher, err := publishers.NewRabbitMQPublisher(cfg.RabbitMQURL, "properties_queue")
	if err != nil {
		log.Printf("⚠️  RabbitMQ not available, property events disabled: %v", err)
		publisher = publishers.NoopPublisher{}
	} else {
		log.Println("✅ Conexión a RabbitMQ exitosa")
		publisher = rabbitPublisher
		defer publisher.Close()
	}

	// ============================================
	// 5. INICIALIZAR CAPAS (Patrón MVC)
	// ============================================
	log.Println("🏗️  Inicializando capas...")

	// Repositories: acceso a datos
	propertyRepo := repositories.NewPropertyRepository(mongoDB)
	leadRepo := repositories.NewLeadRepository(mongoDB)
	contactRepo := repositories.NewContactRepository(mongoDB)
	userRepo := repositories.NewUserRepository(db)
	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost)

	// Almacenamiento de imágenes en disco
	imageStorage, err := storage.NewLocalImageStorage(cfg.UploadDir)
	if err != nil {
		log.Fatal("❌ Failed to create upload directory:", err)
	}

	// Notificador de correo del formulario de contacto
	notifier := services.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.AdminEmail)

	// Services: lógica de negocio
	propertyService := services.NewPropertyService(propertyRepo, cacheRepo, publisher)
	leadService := services.NewLeadService(leadRepo, propertyRepo, userRepo)
	contactService := services.NewContactService(contactRepo, notifier)
	userService := services.NewUserService(userRepo)

	// Admin inicial: solo si la tabla de usuarios está vacía
	if err := userService.SeedAdmin("Admin", cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("❌ Failed to seed admin user:", err)
	}

	// Controllers: manejan HTTP
	propertyController := controllers.NewPropertyController(propertyService, imageStorage)
	leadController := controllers.NewLeadController(leadService)
	contactController := controllers.NewContactController(contactService)
	userController := controllers.NewUserController(userService)

	log.Println("✅ Capas inicializadas")

	// ============================================
	// 6. CONFIGURAR GIN (Framework web)
	// ============================================
	router := gin.Default()

	// CORS - Permitir requests desde el frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Servir las imágenes subidas
	router.Static("/uploads", cfg.UploadDir)

	// ============================================
	// 7. DEFINIR RUTAS (Endpoints)
	// ============================================
	log.Println("🛣️  Configurando rutas...")

	api := router.Group("/api")

	// Rutas PÚBLICAS (sin autenticación)
	api.GET("/health", userController.HealthCheck)
	api.POST("/auth/login", userController.Login)

	api.GET("/properties", propertyController.GetAll)
	api.GET("/properties/featured", propertyController.GetFeatured)
	api.GET("/properties/search", propertyController.Search)
	api.GET("/properties/:id", propertyController.GetByID)

	api.POST("/leads", leadController.Create)
	api.POST("/contact", contactController.Submit)

	// Rutas PROTEGIDAS (requieren JWT)
	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireRoles(domain.RoleAdmin, domain.RoleAgent))
	{
		staff.GET("/auth/me", userController.Me)

		staff.POST("/properties", propertyController.Create)
		staff.PUT("/properties/:id", propertyController.Update)

		// "stats" va antes que ":id" para que no se tome como un ID
		staff.GET("/leads/stats", leadController.GetStats)
		staff.GET("/leads", leadController.GetAll)
		staff.GET("/leads/:id", leadController.GetByID)
		staff.PUT("/leads/:id", leadController.Update)
		staff.POST("/leads/:id/notes", leadController.AddNote)
	}

	// Rutas SOLO ADMIN
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(domain.RoleAdmin))
	{
		admin.POST("/auth/register", userController.Register)
		admin.DELETE("/properties/:id", propertyController.Delete)

		admin.GET("/contact", contactController.GetAll)
		admin.PUT("/contact/:id", contactController.UpdateStatus)
	}

	log.Println("✅ Rutas configuradas")

	// ============================================
	// 8. ARRANCAR EL SERVIDOR
	// ============================================
	log.Printf("🚀 Properties API corriendo en puerto %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
