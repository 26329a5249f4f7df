package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/config"
)

var (
	DB    *gorm.DB
	Mongo *mongo.Database
)

func ConnectDB() {
	connectPostgres()
	connectMongo()
}

func connectPostgres() {
	var err error
	DB, err = gorm.Open(postgres.Open(config.Env.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}

	if err := DB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("Failed to migrate users table:", err)
	}

	log.Println("Connected to PostgreSQL successfully")
}

func connectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.Env.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Mongo = client.Database(config.Env.MongoDB)

	log.Println("Connected to MongoDB successfully")
}

func GetDB() *gorm.DB {
	return DB
}

func GetMongo() *mongo.Database {
	return Mongo
}
