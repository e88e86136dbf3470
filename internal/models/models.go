package models

import "time"

// Client status values as persisted in the clientes table.
const (
	StatusConnected    = "conectado"
	StatusDisconnected = "desconectado"
)

type Technician struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"column:nome;not null"`
	Login        string    `gorm:"column:usuario;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:senha_hash;not null"`
	CreatedAt    time.Time `gorm:"column:criado_em"`
}

func (Technician) TableName() string { return "tecnicos" }

// Client is a managed remote machine. Company and Password are NULL when
// left empty on the form; TaxID is stored exactly as submitted.
type Client struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"column:nome;not null"`
	Company      *string   `gorm:"column:empresa"`
	TaxID        string    `gorm:"column:cnpj"`
	ConnectionID string    `gorm:"column:rustdesk_id;uniqueIndex;not null"`
	Password     *string   `gorm:"column:senha"`
	Notes        string    `gorm:"column:observacoes"`
	Status       string    `gorm:"column:status;default:desconectado"`
	CreatedAt    time.Time `gorm:"column:criado_em"`
}

func (Client) TableName() string { return "clientes" }

func (c Client) Connected() bool { return c.Status == StatusConnected }

// AccessLog only exists in the schema. Nothing writes or reads it yet.
type AccessLog struct {
	ID              uint      `gorm:"primaryKey"`
	Technician      string    `gorm:"column:tecnico;not null"`
	ClientID        *uint     `gorm:"column:cliente_id"`
	Client          *Client   `gorm:"foreignKey:ClientID"`
	At              time.Time `gorm:"column:data_hora"`
	DurationMinutes int       `gorm:"column:duracao_minutos"`
	Notes           string    `gorm:"column:observacoes"`
}

func (AccessLog) TableName() string { return "acessos" }
