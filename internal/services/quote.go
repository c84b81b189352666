package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

const auditEntityQuote = "quote_request"

type QuoteServiceInterface interface {
	GetQuoteRequests(ctx context.Context) ([]dto.QuoteRequestDTO, error)
	FindQuoteRequest(ctx context.Context, id uint64) (*dto.QuoteRequestDTO, error)
	CreateQuoteRequest(ctx context.Context, payload dto.CreateQuoteRequestDTO) (*dto.QuoteRequestDTO, error)
	UpdateQuoteStatus(ctx context.Context, id uint64, payload dto.UpdateQuoteStatusDTO) (*dto.QuoteRequestDTO, error)
	DeleteQuoteRequest(ctx context.Context, id uint64) error
	RenderQuotePDF(ctx context.Context, id uint64) ([]byte, error)
}

type QuoteService struct {
	txManager    repositories.TxManagerInterface
	quoteRepo    repositories.QuoteRepositoryInterface
	supplierRepo repositories.SupplierRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
	now          func() time.Time
}

func NewQuoteService(
	txManager repositories.TxManagerInterface,
	quoteRepo repositories.QuoteRepositoryInterface,
	supplierRepo repositories.SupplierRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		txManager:    txManager,
		quoteRepo:    quoteRepo,
		supplierRepo: supplierRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *QuoteService) GetQuoteRequests(ctx context.Context) ([]dto.QuoteRequestDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.QuoteRequestDTO, 0, len(quotes))
	for i := range quotes {
		out = append(out, mapQuoteRequest(&quotes[i]))
	}
	return out, nil
}

func (s *QuoteService) FindQuoteRequest(ctx context.Context, id uint64) (*dto.QuoteRequestDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapQuoteRequest(quote)
	return &out, nil
}

// CreateQuoteRequest agrupa equipamentos para cotação com um fornecedor.
// Cabeçalho e itens nascem na mesma transação.
func (s *QuoteService) CreateQuoteRequest(ctx context.Context, payload dto.CreateQuoteRequestDTO) (*dto.QuoteRequestDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return nil, err
	}

	if _, err := s.supplierRepo.FindByID(ctx, payload.SupplierID); err != nil {
		return nil, err
	}

	quote := &entities.QuoteRequest{
		SupplierID: payload.SupplierID,
		Status:     entities.QuoteNew,
		Notes:      payload.Notes,
	}

	var quoteID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.quoteRepo.CreateTx(ctx, tx, quote, payload.EquipmentIDs)
		if err != nil {
			return err
		}
		quoteID = id
		return nil
	})
	if err != nil {
		s.logger.Error("falha ao criar solicitação de orçamento",
			zap.Uint64("supplierId", payload.SupplierID), zap.Error(err))
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntityQuote, quoteID, map[string]interface{}{
		"supplier_id":     payload.SupplierID,
		"equipment_count": len(payload.EquipmentIDs),
	})
	return s.FindQuoteRequest(ctx, quoteID)
}

func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uint64, payload dto.UpdateQuoteStatusDTO) (*dto.QuoteRequestDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, payload.Status); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntityQuote, id, map[string]interface{}{
		"status": payload.Status,
	})
	return s.FindQuoteRequest(ctx, id)
}

func (s *QuoteService) DeleteQuoteRequest(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return err
	}

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntityQuote, id, nil)
	return nil
}

// RenderQuotePDF gera o rascunho em PDF da solicitação: cabeçalho com o
// fornecedor e a tabela de equipamentos a cotar.
func (s *QuoteService) RenderQuotePDF(ctx context.Context, id uint64) ([]byte, error) {
	if _, err := requirePermission(ctx, s.gate, authz.QuotesManage); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Solicitacao de Orcamento de Calibracao N. %d", quote.ID))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if quote.Supplier != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Fornecedor: %s", quote.Supplier.Name))
		pdf.Ln(5)
		if quote.Supplier.CNPJ != nil {
			pdf.Cell(0, 6, fmt.Sprintf("CNPJ: %s", *quote.Supplier.CNPJ))
			pdf.Ln(5)
		}
		if quote.Supplier.Email != nil {
			pdf.Cell(0, 6, fmt.Sprintf("E-mail: %s", *quote.Supplier.Email))
			pdf.Ln(5)
		}
	}
	pdf.Cell(0, 6, fmt.Sprintf("Emitida em: %s", s.now().Format("02/01/2006")))
	pdf.Ln(5)
	if quote.Notes != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Observacoes: %s", *quote.Notes))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Codigo", "1", 0, "C", false, 0, "")
	pdf.CellFormat(140, 6, "Equipamento", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range quote.Items {
		code, name := "", ""
		if item.Equipment != nil {
			code, name = item.Equipment.Code, item.Equipment.Name
		}
		pdf.CellFormat(40, 6, code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(140, 6, name, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
