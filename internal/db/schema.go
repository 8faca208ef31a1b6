package db

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the current schema.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfZero stores optional ids as NULL.
func NullIfZero(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type tableDDL struct {
	name string
	ddl  string
}

var tables = []tableDDL{
	{"admins", `
CREATE TABLE IF NOT EXISTS admins (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'admin',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_admin_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"drivers", `
CREATE TABLE IF NOT EXISTS drivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL,
	email VARCHAR(255) NULL,
	car_model VARCHAR(100) NULL,
	car_plate VARCHAR(30) NULL,
	car_color VARCHAR(50) NULL,
	seats INT NOT NULL DEFAULT 0,
	base_price BIGINT NOT NULL DEFAULT 0,
	price_per_km BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
	debt BIGINT NOT NULL DEFAULT 0,
	photo_url VARCHAR(500) NULL,
	license_url VARCHAR(500) NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_driver_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"tours", `
CREATE TABLE IF NOT EXISTS tours (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NULL,
	location VARCHAR(255) NULL,
	duration VARCHAR(100) NULL,
	price BIGINT NOT NULL DEFAULT 0,
	image_url VARCHAR(500) NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	customer_name VARCHAR(255) NOT NULL,
	customer_phone VARCHAR(50) NOT NULL,
	customer_email VARCHAR(255) NULL,
	tour_id BIGINT NULL,
	tour_title VARCHAR(255) NULL,
	trip_date VARCHAR(20) NULL,
	pickup_location VARCHAR(255) NULL,
	passengers INT NOT NULL DEFAULT 1,
	status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
	price BIGINT NULL,
	price_display VARCHAR(64) NULL,
	promo_code VARCHAR(50) NULL,
	driver_id BIGINT NULL,
	driver_name VARCHAR(255) NULL,
	debt_charged TINYINT(1) NOT NULL DEFAULT 0,
	notes TEXT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_booking_status (status),
	KEY idx_booking_created (created_at),
	KEY idx_booking_driver (driver_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"promo_codes", `
CREATE TABLE IF NOT EXISTS promo_codes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	code VARCHAR(50) NOT NULL,
	discount_type VARCHAR(10) NOT NULL,
	discount_value BIGINT NOT NULL,
	max_uses INT NOT NULL DEFAULT 0,
	used_count INT NOT NULL DEFAULT 0,
	active TINYINT(1) NOT NULL DEFAULT 1,
	expires_at DATETIME NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_promo_code (code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"settings", `
CREATE TABLE IF NOT EXISTS settings (
	id TINYINT PRIMARY KEY,
	commission_rate DOUBLE NOT NULL DEFAULT 0,
	sms_enabled TINYINT(1) NOT NULL DEFAULT 0,
	sms_sender VARCHAR(20) NULL,
	admin_phone VARCHAR(50) NULL,
	support_email VARCHAR(255) NULL,
	auto_confirm TINYINT(1) NOT NULL DEFAULT 0,
	maintenance_mode TINYINT(1) NOT NULL DEFAULT 0,
	currency VARCHAR(10) NOT NULL DEFAULT 'IDR',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"sms_logs", `
CREATE TABLE IF NOT EXISTS sms_logs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	phone VARCHAR(50) NOT NULL,
	message TEXT NOT NULL,
	status VARCHAR(10) NOT NULL,
	provider_ref VARCHAR(100) NULL,
	error TEXT NULL,
	booking_id BIGINT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_sms_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
}

// EnsureSchema creates every missing table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, t := range tables {
		if HasTable(ctx, db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
