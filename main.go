package main

import (
	"database/sql"
	"log"

	"github.com/IDobkov90/ufc/cmd/start"
	"github.com/IDobkov90/ufc/config"
	"github.com/IDobkov90/ufc/internal/handler"
	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//@title UFC Forum API
//@version 1.0
//@description Discussion forum backend for UFC fans
//@host localhost:8080

func main() {
	if err := config.Init("config/config.yaml"); err != nil {
		log.Fatalf("Config start failed:%v", err)
	}
	gin.SetMode(config.Setting.Server.Mode)
	dsn := config.Setting.Database.GetDSN()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Mysql start failed:%v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer func(sqlDB *sql.DB) {
		if err := sqlDB.Close(); err != nil {
			log.Fatal(err)
		}
	}(sqlDB)
	err = db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Post{},
		&model.Comment{},
		&model.PostVote{},
	)
	if err != nil {
		log.Fatalf("Migration failed:%v", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Setting.Redis.GetAddr(),
		Password: config.Setting.Redis.Password,
		DB:       config.Setting.Redis.DB,
		PoolSize: config.Setting.Redis.PoolSize,
	})
	repos := repository.NewRepositories(db)
	services := service.NewServices(
		db,
		rdb,
		repos,
		config.Setting.JWT.Secret,
		config.Setting.JWT.ExpireHours,
	)
	httpHandler := handler.NewHandler(services)
	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatal(err)
	}
	start.SetRoute(r, httpHandler, repos, rdb)
}
