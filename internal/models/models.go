package models

import (
	"time"

	"gorm.io/gorm"
)

type Usuario struct {
	gorm.Model
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Senha  string `gorm:"not null" json:"-"`
	Admin  bool   `gorm:"default:false" json:"admin"`
	Status string `gorm:"default:ativo" json:"status"` // "ativo" ou "inativo"
}

type Fila struct {
	gorm.Model
	UsuarioID uint    `gorm:"uniqueIndex;not null" json:"usuario_id"` // um slot ativo por usuário
	Usuario   Usuario `gorm:"foreignKey:UsuarioID" json:"usuario"`
	Posicao   int     `gorm:"index;not null" json:"posicao"` // posições densas 1..N, 1 = sendo atendido
	Cafe      int     `gorm:"default:0" json:"cafe"`         // quantidade pendente de café
	Filtro    int     `gorm:"default:0" json:"filtro"`       // quantidade pendente de filtro
}

// TableName mantém o nome singular usado desde as primeiras migrações.
func (Fila) TableName() string {
	return "fila"
}

type Compra struct {
	gorm.Model
	UsuarioID          uint       `gorm:"index;not null" json:"usuario_id"`
	Usuario            Usuario    `gorm:"foreignKey:UsuarioID" json:"usuario"`
	Item               string     `gorm:"not null" json:"item"` // "cafe" ou "filtro"
	Quantidade         int        `gorm:"not null" json:"quantidade"`
	DataCompra         time.Time  `gorm:"index;not null" json:"data_compra"`
	UltimaAlteracaoPor *uint      `json:"ultima_alteracao_por"` // ID do admin que corrigiu o registro
	AlteradoPor        *Usuario   `gorm:"foreignKey:UltimaAlteracaoPor" json:"alterado_por,omitempty"`
	UltimaAlteracaoEm  *time.Time `json:"ultima_alteracao_em"`
}
