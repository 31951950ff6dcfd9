package entity

import "time"

// Roles de usuario. RoleUser es el rol de quien se registra por signup;
// los demás se asignan al crear colaboradores.
const (
	RoleUser         = "user"
	RoleCollaborator = "collaborator"
	RoleManager      = "manager"
	RoleAdmin        = "admin"
)

// Establishment datos del establecimiento comercial del usuario (jsonb).
type Establishment struct {
	TradeName   string `json:"tradeName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
}

// EstablishmentPatch cambios parciales del establecimiento: nil = no enviado,
// "" borra el campo.
type EstablishmentPatch struct {
	TradeName   *string `json:"tradeName"`
	CompanyName *string `json:"companyName"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
}

// Merge aplica sobre e los campos enviados en p.
func (e Establishment) Merge(p EstablishmentPatch) Establishment {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.TradeName, p.TradeName)
	set(&e.CompanyName, p.CompanyName)
	set(&e.Address, p.Address)
	set(&e.City, p.City)
	set(&e.State, p.State)
	set(&e.ZipCode, p.ZipCode)
	return e
}

// User usuario del sistema: cuenta propia (signup) o colaborador.
type User struct {
	ID                     string
	Email                  string
	PasswordHash           string
	Name                   string
	EmailVerified          bool
	Role                   string
	Phone                  string
	CPFCNPJ                string
	Establishment          *Establishment
	AvatarURL              string
	EmailVerificationToken *string
	EmailVerificationExp   *time.Time
	PasswordResetToken     *string
	PasswordResetExp       *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ClearVerificationToken invalida el token de verificación de email.
func (u *User) ClearVerificationToken() {
	u.EmailVerificationToken = nil
	u.EmailVerificationExp = nil
}

// ClearResetToken invalida el token de redefinición de contraseña.
func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetExp = nil
}
