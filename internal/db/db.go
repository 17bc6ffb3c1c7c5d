package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

func NewDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Venue{},
		&models.Stylist{},
		&models.UserProfile{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AppointmentFormula{},
		&models.AppointmentTreatment{},
		&models.AppointmentProduct{},
		&models.AppointmentPhoto{},
		&models.AuditLog{},
	); err != nil {
		return nil, err
	}

	db.Exec(`
        UPDATE appointments
        SET status = 'scheduled'
        WHERE status IS NULL OR status = ''
    `)

	logger.Info("database ready", zap.Int("max_open_conns", 10))
	return db, nil
}
