package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"           // postgres
	_ "github.com/mattn/go-sqlite3" // sqlite3
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// NewDBConnection abre a conexão do device store e testa o Ping.
func NewDBConnection(dialect, dsn string) (*sql.DB, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return nil, fmt.Errorf("dialeto não suportado: %q", dialect)
	}

	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// NewDeviceStore cria o container do whatsmeow sobre a conexão e aplica as migrações.
func NewDeviceStore(ctx context.Context, db *sql.DB, dialect string, log waLog.Logger) (*sqlstore.Container, error) {
	container := sqlstore.NewWithDB(db, dialect, log)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("falha ao migrar device store: %w", err)
	}
	return container, nil
}
