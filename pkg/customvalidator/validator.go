package customvalidator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registra as regras de validação próprias do
// domínio de calibração no validator compartilhado da aplicação.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("date_only", isDateOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("asset_code", isAssetCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("usage_location", validateUsageLocation); err != nil {
		return err
	}
	return nil
}

// isDateOnly aceita datas no formato 2006-01-02 (sem hora).
func isDateOnly(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// isAssetCode valida o padrão de etiqueta patrimonial: letras, dígitos e hífen.
func isAssetCode(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]{1,31}$`)
	return re.MatchString(fl.Field().String())
}

// validateUsageLocation garante a regra de movimentação: equipamento em uso
// precisa de setor, equipamento em estoque precisa de localização.
func validateUsageLocation(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	usage := fl.Field().String()

	hasPtr := func(name string) bool {
		f := parent.FieldByName(name)
		return f.IsValid() && f.Kind() == reflect.Ptr && !f.IsNil()
	}

	switch strings.ToUpper(usage) {
	case "IN_USE":
		return hasPtr("SectorID")
	case "IN_STOCK":
		f := parent.FieldByName("Location")
		if f.IsValid() && f.Kind() == reflect.Ptr && !f.IsNil() {
			return strings.TrimSpace(f.Elem().String()) != ""
		}
		return false
	case "":
		return true
	}
	return false
}
