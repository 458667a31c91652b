package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	cryptoutil "talentos/internal/platform/crypto"
)

type Service struct {
	store      *Store
	crypto     *cryptoutil.Service
	reportsDir string
}

func NewService(store *Store, crypto *cryptoutil.Service, reportsDir string) *Service {
	return &Service{store: store, crypto: crypto, reportsDir: reportsDir}
}

func (s *Service) SalaryOverview(ctx context.Context) ([]SalaryOverviewRow, error) {
	return s.store.SalaryOverview(ctx)
}

func (s *Service) NineBoxDistribution(ctx context.Context) ([]NineBoxCell, error) {
	return s.store.NineBoxDistribution(ctx)
}

func (s *Service) ProgressionSummary(ctx context.Context, since time.Time) (ProgressionSummary, error) {
	return s.store.ProgressionSummary(ctx, since)
}

// GenerateProgressionLetterPDF renders the formal letter for one executed
// progression. When the encryption key is configured the file is stored
// encrypted at rest.
func (s *Service) GenerateProgressionLetterPDF(ctx context.Context, historyID string) (string, error) {
	var userName, positionName, trackName, levelName, progressionType string
	var toSalary float64
	var executedAt time.Time
	err := s.store.DB.QueryRow(ctx, `
    SELECT u.name, p.job_position, t.name, l.name, h.type, h.to_salary, h.created_at
    FROM progression_history h
    JOIN users u ON h.user_id = u.id
    JOIN track_positions p ON h.to_position_id = p.id
    JOIN career_tracks t ON p.track_id = t.id
    JOIN salary_levels l ON h.to_level_id = l.id
    WHERE h.id = $1
  `, historyID).Scan(&userName, &positionName, &trackName, &levelName, &progressionType, &toSalary, &executedAt)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.reportsDir, historyID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Carta de Progressao")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Colaborador: %s", userName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Trilha: %s", trackName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Cargo: %s (nivel %s)", positionName, levelName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tipo de progressao: %s", progressionType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Novo salario: %.2f", toSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Data: %s", executedAt.Format("2006-01-02")))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}
