package database

import (
	"fmt"
	"log"

	"chathub-service/config"
	"chathub-service/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Postgres *gorm.DB

func PostgresConnect() {
	var err error
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	Postgres, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect postgres")
	}

	log.Printf("Connection opened to Postgres")
	Migrate(Postgres)
	log.Printf("Postgres Database Migrated")
}

// Migrate runs the schema migration on the given handle. Tests reuse it
// against an in-memory sqlite database.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&model.User{},
		&model.Presence{},
		&model.Conversation{},
		&model.Group{},
		&model.GroupMember{},
		&model.Channel{},
		&model.ChannelMember{},
		&model.Message{},
		&model.Reaction{},
		&model.ReadReceipt{},
		&model.GroupBot{},
		&model.CryptoTransaction{},
		&model.Image{},
	)
}
