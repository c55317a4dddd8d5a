package validation

const (
	lettersPattern        = `^[a-zA-ZÀ-ÿ\s]+$`
	lettersDigitsPattern  = `^[a-zA-ZÀ-ÿ0-9\s]+$`
	emailPattern          = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	phonePattern          = `^\d{3}-\d{4}$`
	openingHoursPattern   = `^([01]\d|2[0-3]):([0-5]\d)-([01]\d|2[0-3]):([0-5]\d)$`
	platePattern          = `^[A-Z]{3}-\d{3,4}$`
	yearPattern           = `^\d{4}$`
	digitsPattern         = `^\d+$`
	datePattern           = `^\d{4}-\d{2}-\d{2}`
	twoWordsPattern       = `^[a-zA-Z]+\s[a-zA-Z]+$`
	twoOrMoreWordsPattern = `^[a-zA-ZÀ-ÿ]+(\s[a-zA-ZÀ-ÿ]+)+$`
	minPasswordTag        = "min=5"
	vehicleTypeTag        = "oneof=automovil camion motocicleta"
	vehicleStateTag       = "oneof=activo 'en mantenimiento' inactivo"
	serviceTypeTag        = "oneof='mantenimiento preventivo' 'reparacion correctiva' 'revision tecnica'"
	nonNegativeTag        = "gte=0"
	referenceTag          = "gt=0"
)

// Rule is one predicate on one field. Pattern rules are matched against the
// value's text form; Tag rules go through go-playground/validator.
type Rule struct {
	Field    string
	Pattern  string
	Tag      string
	Required bool
	Message  string
}

type Table []Rule

var VehicleRules = Table{
	{Field: "marca", Pattern: lettersPattern, Required: true, Message: "Ingrese una marca válida sin números."},
	{Field: "modelo", Pattern: lettersDigitsPattern, Required: true, Message: "Ingrese un modelo válido."},
	{Field: "año", Pattern: yearPattern, Required: true, Message: "Ingrese un año válido."},
	{Field: "numeroPlaca", Pattern: platePattern, Required: true, Message: "Ingrese un número de placa válido en formato AAA-123 o AAA-1234."},
	{Field: "color", Pattern: lettersPattern, Required: true, Message: "Ingrese un color válido sin números."},
	{Field: "tipo", Tag: vehicleTypeTag, Required: true, Message: "Seleccione un tipo de vehículo."},
	{Field: "odometro", Pattern: digitsPattern, Required: true, Message: "Ingrese un odómetro válido."},
	{Field: "estado", Tag: vehicleStateTag, Required: true, Message: "Seleccione un estado."},
}

var WorkshopRules = Table{
	{Field: "nombre", Pattern: lettersPattern, Required: true, Message: "Ingrese un nombre válido sin números."},
	{Field: "direccion", Pattern: lettersDigitsPattern, Required: true, Message: "Ingrese una dirección válida."},
	{Field: "telefono", Pattern: phonePattern, Required: true, Message: "Ingrese un teléfono válido en formato 555-1234."},
	{Field: "correo", Pattern: emailPattern, Required: true, Message: "Ingrese un correo electrónico válido."},
	{Field: "horariosAtencion", Pattern: openingHoursPattern, Required: true, Message: "Ingrese un horario de atención válido en formato HH:MM-HH:MM."},
}

var ServiceRecordRules = Table{
	{Field: "fechaServicio", Pattern: datePattern, Required: true, Message: "Seleccione una fecha de servicio válida."},
	{Field: "costo", Tag: nonNegativeTag, Required: true, Message: "Ingrese un costo válido."},
	{Field: "tipoServicio", Tag: serviceTypeTag, Required: true, Message: "Seleccione un tipo de servicio."},
	{Field: "kilometraje", Pattern: digitsPattern, Required: true, Message: "Ingrese un kilometraje válido."},
	{Field: "vehiculo", Tag: referenceTag, Required: true, Message: "Seleccione un vehículo."},
	{Field: "taller", Tag: referenceTag, Required: true, Message: "Seleccione un taller."},
}

var RegistrationRules = Table{
	{Field: "nombres", Pattern: twoWordsPattern, Required: true, Message: "Debe ingresar dos nombres separados por un espacio"},
	{Field: "apellidos", Pattern: twoWordsPattern, Required: true, Message: "Debe ingresar dos apellidos separados por un espacio"},
	{Field: "email", Pattern: emailPattern, Required: true, Message: "Ingrese un correo electrónico válido."},
	{Field: "password", Tag: minPasswordTag, Required: true, Message: "La contraseña debe tener al menos 5 caracteres"},
}

var ProfileRules = Table{
	{Field: "nombres", Pattern: twoOrMoreWordsPattern, Required: true, Message: "Debe ingresar dos nombres separados por un espacio"},
	{Field: "apellidos", Pattern: twoOrMoreWordsPattern, Required: true, Message: "Ingrese al menos dos apellidos válidos sin números."},
	{Field: "email", Pattern: emailPattern, Required: true, Message: "Ingrese un correo electrónico válido."},
	{Field: "password", Tag: minPasswordTag, Message: "La contraseña debe tener al menos 5 caracteres."},
}

// UserRules is used by the administrator's user editor.
var UserRules = Table{
	{Field: "nombres", Pattern: twoOrMoreWordsPattern, Required: true, Message: "Ingrese al menos dos nombres válidos sin números."},
	{Field: "apellidos", Pattern: twoOrMoreWordsPattern, Required: true, Message: "Ingrese al menos dos apellidos válidos sin números."},
	{Field: "email", Pattern: emailPattern, Required: true, Message: "Ingrese un correo electrónico válido."},
}
