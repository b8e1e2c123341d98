// Package session modela la identidad del usuario conectado como valor
// explícito con vida de sesión de página, en lugar de un estado global
// compartido. El middleware HTTP la produce y los casos de uso la reciben en
// construcción.
package session

// Tipos de usuario conocidos.
const (
	UserTypeEmployee UserType = "Employee"
	UserTypeAdmin    UserType = "Admin"
)

// UserType distingue al empleado de los roles privilegiados.
type UserType string

// Identity identidad de la sesión actual: tipo de usuario y email.
type Identity struct {
	Type  UserType
	Email string
}

// IsEmployee indica si la sesión pertenece a un empleado.
func (i Identity) IsEmployee() bool { return i.Type == UserTypeEmployee }

// CanRead indica si la sesión puede leer una nota del email dado.
// Un empleado solo lee las suyas; los roles privilegiados leen todas.
func (i Identity) CanRead(ownerEmail string) bool {
	if i.Type == UserTypeAdmin {
		return true
	}
	return i.Email == ownerEmail
}
