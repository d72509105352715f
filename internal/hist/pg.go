package hist

import (
	"strings"
	"time"

	"main/pkg/conn"

	"github.com/yanun0323/errors"
)

// Record is one archived pipeline row.
type Record struct {
	ID         uint   `gorm:"primaryKey"`
	Service    string `gorm:"index:idx_service_key"`
	PersistKey string `gorm:"index:idx_service_key"`
	Row        string
	RecordedAt time.Time
}

// PostgresSink archives rows into a single records table.
type PostgresSink struct {
	client *conn.Postgres
}

// NewPostgresSink dials the database and migrates the records table.
func NewPostgresSink(option conn.Option) (*PostgresSink, error) {
	client, err := conn.Open(option)
	if err != nil {
		return nil, errors.Wrap(err, "dial archive database")
	}
	if err := client.DB().AutoMigrate(&Record{}); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "migrate records table")
	}
	return &PostgresSink{client: client}, nil
}

func (s *PostgresSink) Persist(service, key string, fields []string) error {
	record := Record{
		Service:    service,
		PersistKey: key,
		Row:        strings.Join(fields, ","),
		RecordedAt: time.Now().UTC(),
	}
	if err := s.client.DB().Create(&record).Error; err != nil {
		return errors.Wrapf(err, "insert %s record", service)
	}
	return nil
}

func (s *PostgresSink) Close() error {
	return s.client.Close()
}
