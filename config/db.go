package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"vph-backend/models"
	"vph-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "vph_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations in
// parent->child order, and seeds baseline rows.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.StaffProfile{},
		&models.RoleAssignment{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures a default manager account and a starter room set
// exist so a fresh install is usable immediately.
func SeedDatabase() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		password := utils.EnvOrDefault("SEED_MANAGER_PASSWORD", "manager123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash seed manager password: %v", err)
		} else {
			user := models.User{
				UserUID:  uuid.NewString(),
				Username: utils.EnvOrDefault("SEED_MANAGER_USERNAME", "manager@vph.local"),
				Password: string(hash),
				IsActive: true,
			}
			if err := DB.Create(&user).Error; err != nil {
				log.Printf("warning: failed to create seed manager: %v", err)
			} else {
				profile := models.StaffProfile{
					UserID:   user.ID,
					FullName: "Hotel Manager",
					IsActive: true,
				}
				if err := DB.Create(&profile).Error; err != nil {
					log.Printf("warning: failed to create seed manager profile: %v", err)
				}
				assignment := models.RoleAssignment{UserID: user.ID, Role: models.RoleManager}
				if err := DB.Create(&assignment).Error; err != nil {
					log.Printf("warning: failed to assign seed manager role: %v", err)
				}
				log.Println("Default manager seeded")
			}
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", RoomType: models.RoomTypeStandard, Floor: 1, BaseRate: 80000, Status: models.RoomAvailable},
			{RoomNumber: "102", RoomType: models.RoomTypeStandard, Floor: 1, BaseRate: 80000, Status: models.RoomAvailable},
			{RoomNumber: "105", RoomType: models.RoomTypeDeluxe, Floor: 1, BaseRate: 100000, Status: models.RoomAvailable},
			{RoomNumber: "201", RoomType: models.RoomTypeDeluxe, Floor: 2, BaseRate: 100000, Status: models.RoomAvailable},
			{RoomNumber: "204", RoomType: models.RoomTypeSuite, Floor: 2, BaseRate: 180000, Status: models.RoomAvailable},
			{RoomNumber: "301", RoomType: models.RoomTypeExecutive, Floor: 3, BaseRate: 250000, Status: models.RoomAvailable},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}
