package constants

type standardConstant struct {
	symbol      string
	description string
	expression  string
}

// CODATA 2006 values
var standard = []standardConstant{
	{"c", "speed of light", "299792458*m/s"},
	{"G", "gravitational constant", "6.67300E-11*m**3/kg/s**2"},
	{"h", "Planck constant", "6.62606896e-34*J*s"},
	{"hbar", "reduced Planck constant", "Const.h/(2*3.141592653589793)"},
	{"e", "elementary charge", "1.602176487e-19*C"},
	{"NA", "Avogadro constant", "6.02214179e23/mol"},
	{"k", "Boltzmann constant", "1.3806504e-23*J/K"},
	{"R", "molar gas constant", "Const.NA*Const.k"},
	{"F", "Faraday constant", "Const.NA*Const.e"},
}

// RegisterStandard defines the standard physical constants
func RegisterStandard(r *Registry) error {
	for _, c := range standard {
		if err := r.DefineExpr(c.symbol, c.description, c.expression); err != nil {
			return err
		}
	}
	return nil
}
