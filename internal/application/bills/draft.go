package bills

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billed-app/billed-api/internal/domain"
	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/internal/domain/session"
	"github.com/billed-app/billed-api/internal/domain/upload"
	"github.com/billed-app/billed-api/pkg/logger"
)

// Estados del borrador. El envío recorre Editing → Uploading → Persisting →
// Done; Failed es terminal y se alcanza desde Uploading o Persisting. Tras un
// fallo no hay reintento automático: un nuevo Submit reinicia desde Editing.
const (
	StateEditing DraftState = iota
	StateUploading
	StatePersisting
	StateDone
	StateFailed
)

// DraftState estado del ciclo de vida de un borrador.
type DraftState int

func (s DraftState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateUploading:
		return "uploading"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSubmissionInFlight segundo Submit mientras el anterior sigue en
// Uploading/Persisting. Decisión explícita: se rechaza, no se encola.
var ErrSubmissionInFlight = errors.New("envío ya en curso")

// FileErrorKey identificador estable de la región de error del justificante
// en la vista del formulario.
const FileErrorKey = "newbill-file-error-message"

// FormFields campos del formulario en su forma textual. El parseo numérico
// (amount, vat, pct) sucede en el envío; un vat vacío queda ausente, no cero.
type FormFields struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// DraftView estado declarativo del formulario que consume la capa de render:
// borrador + flag de error de validación + fichero retenido.
type DraftView struct {
	State            DraftState
	Fields           FormFields
	FileName         string
	FileErrorVisible bool
}

// DraftController orquesta el ciclo de vida de una única nota: capta las
// ediciones, valida el justificante y ejecuta la secuencia create+update
// contra el store remoto, navegando al listado si todo va bien.
type DraftController struct {
	store    repository.BillStore
	identity session.Identity
	navigate NavigateFunc
	log      *logger.Logger

	state          DraftState
	fields         FormFields
	fileName       string
	receipt        []byte
	fileErrVisible bool
}

// NewDraftController construye el controlador para la identidad dada.
func NewDraftController(store repository.BillStore, identity session.Identity, navigate NavigateFunc, log *logger.Logger) *DraftController {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftController{
		store:    store,
		identity: identity,
		navigate: navigate,
		log:      log,
		state:    StateEditing,
	}
}

// State estado actual del borrador.
func (d *DraftController) State() DraftState { return d.state }

// View instantánea del estado de la vista.
func (d *DraftController) View() DraftView {
	return DraftView{
		State:            d.state,
		Fields:           d.fields,
		FileName:         d.fileName,
		FileErrorVisible: d.fileErrVisible,
	}
}

// SetFields actualiza el borrador en memoria. Sin llamadas remotas; se ignora
// mientras un envío está en curso.
func (d *DraftController) SetFields(f FormFields) {
	if d.state == StateUploading || d.state == StatePersisting {
		return
	}
	d.fields = f
}

// HandleFileChange valida el candidato elegido. Si se rechaza, la selección
// retenida se limpia y el flag de error queda visible; si se acepta, el
// contenido se lee completo y se retiene para la subida (el store consume el
// stream en cada create, y un reenvío tras fallo debe resubir los mismos
// bytes). El estado permanece en Editing en ambos casos.
func (d *DraftController) HandleFileChange(c upload.Candidate, content io.Reader) error {
	if err := upload.Validate(c); err != nil {
		d.fileName = ""
		d.receipt = nil
		d.fileErrVisible = true
		return err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		d.fileName = ""
		d.receipt = nil
		return fmt.Errorf("leer justificante: %w", err)
	}
	d.fileName = c.FileName
	d.receipt = data
	d.fileErrVisible = false
	return nil
}

// Submit ejecuta el envío en dos fases: Create sube el justificante con el
// email del emisor y devuelve id/fileUrl/fileName; Update completa el registro
// con todos los campos. Solo tras el Update exitoso se navega al listado. Un
// fallo remoto deja el formulario visible (sin navegación) y se registra en el
// log; la precondición "fichero ya aceptado" la garantiza la UI y no se
// revalida aquí.
func (d *DraftController) Submit(ctx context.Context) (*entity.Bill, error) {
	if d.state == StateUploading || d.state == StatePersisting {
		return nil, ErrSubmissionInFlight
	}
	// Un reenvío tras Failed o Done reinicia el ciclo.
	d.state = StateEditing

	draft, err := d.buildDraft()
	if err != nil {
		return nil, err
	}

	d.state = StateUploading
	created, err := d.store.Create(ctx, repository.CreateBillInput{
		Receipt:  bytes.NewReader(d.receipt),
		FileName: d.fileName,
		Email:    d.identity.Email,
	})
	if err != nil {
		d.state = StateFailed
		d.log.Error().Err(err).Str("email", d.identity.Email).Msg("create de la nota falló")
		return nil, err
	}

	d.state = StatePersisting
	draft.ID = created.ID
	draft.FileURL = created.FileURL
	draft.FileName = created.FileName
	updated, err := d.store.Update(ctx, draft.ID, draft)
	if err != nil {
		d.state = StateFailed
		d.log.Error().Err(err).Str("bill_id", draft.ID).Msg("update de la nota falló")
		return nil, err
	}

	d.state = StateDone
	if d.navigate != nil {
		d.navigate(PathBills)
	}
	return updated, nil
}

// buildDraft construye la nota a partir de los campos del formulario:
// status pending, email de la identidad de sesión, numéricos parseados.
func (d *DraftController) buildDraft() (entity.Bill, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(d.fields.Amount))
	if err != nil {
		return entity.Bill{}, fmt.Errorf("%w: amount %q", domain.ErrInvalidInput, d.fields.Amount)
	}
	pct, err := decimal.NewFromString(strings.TrimSpace(d.fields.Pct))
	if err != nil {
		return entity.Bill{}, fmt.Errorf("%w: pct %q", domain.ErrInvalidInput, d.fields.Pct)
	}

	bill := entity.Bill{
		Type:       d.fields.Type,
		Name:       d.fields.Name,
		Date:       d.fields.Date,
		Amount:     amount,
		VAT:        parseOptionalDecimal(d.fields.VAT),
		Pct:        pct,
		Commentary: d.fields.Commentary,
		Status:     entity.BillStatusPending,
		Email:      d.identity.Email,
	}
	if err := bill.Validate(); err != nil {
		return entity.Bill{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	return bill, nil
}

// parseOptionalDecimal parsea un campo numérico opcional: vacío o no numérico
// queda ausente en lugar de forzarse a cero.
func parseOptionalDecimal(s string) decimal.NullDecimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: v, Valid: true}
}
