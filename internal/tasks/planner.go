package tasks

import (
	"log"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// LimparFilaInativos remove da fila os slots de usuários desativados e
// compacta as posições de quem estava atrás. Roda na mesma disciplina
// transacional dos demais mutadores da fila.
func LimparFilaInativos() {
	removidos := 0
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := storage.LockFila(tx); err != nil {
			return err
		}

		var inativos []models.Fila
		if err := tx.
			Select("fila.*").
			Joins("JOIN usuarios ON usuarios.id = fila.usuario_id").
			Where("usuarios.status <> ?", "ativo").
			Order("posicao DESC").
			Find(&inativos).Error; err != nil {
			return err
		}

		// Do fundo para a frente: cada remoção só compacta posições maiores.
		for _, entrada := range inativos {
			if err := tx.Unscoped().Delete(&entrada).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Fila{}).
				Where("posicao > ?", entrada.Posicao).
				UpdateColumn("posicao", gorm.Expr("posicao - 1")).Error; err != nil {
				return err
			}
			removidos++
		}
		return nil
	})

	if err != nil {
		log.Println("Erro ao limpar usuários inativos da fila:", err)
		return
	}
	if removidos > 0 {
		log.Printf("Limpeza da fila: %d slot(s) de usuários inativos removido(s).\n", removidos)
	}
}

// InitScheduler inicializa o agendador de tarefas cron.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Limpeza diária da fila às 03:00.
	_, err := c.AddFunc("0 0 3 * * *", LimparFilaInativos)
	if err != nil {
		log.Println("Erro ao registrar a tarefa LimparFilaInativos:", err)
	}

	c.Start()
	log.Println("Agendador de tarefas iniciado.")
	return c
}
