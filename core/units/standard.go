package units

import "math"

// Standard dimensions
const (
	Mass                Dimension = "mass"
	Length              Dimension = "length"
	Time                Dimension = "time"
	ElectricCurrent     Dimension = "electric_current"
	Temperature         Dimension = "temperature"
	LuminousIntensity   Dimension = "luminous_intensity"
	AmountOfSubstance   Dimension = "amount_of_substance"
	Speed               Dimension = "speed"
	Acceleration        Dimension = "acceleration"
	Area                Dimension = "area"
	Volume              Dimension = "volume"
	Power               Dimension = "power"
	Frequency           Dimension = "frequency"
	Force               Dimension = "force"
	Pressure            Dimension = "pressure"
	Energy              Dimension = "energy"
	ElectricCharge      Dimension = "electric_charge"
	Voltage             Dimension = "voltage"
	ElectricCapacitance Dimension = "electric_capacitance"
	ElectricResistance  Dimension = "electric_resistance"
	ElectricConductance Dimension = "electric_conductance"
	MagneticFlux        Dimension = "magnetic_flux"
	MagneticField       Dimension = "magnetic_field"
	Inductance          Dimension = "inductance"
	Angle               Dimension = "angle"
	SolidAngle          Dimension = "solid_angle"
	LuminousFlux        Dimension = "luminous_flux"
	Illuminance         Dimension = "illuminance"
	Luminance           Dimension = "luminance"
	Radioactivity       Dimension = "radioactivity"
	AbsorbedDose        Dimension = "absorbed_dose"
	EquivalentDose      Dimension = "equivalent_dose"
	CatalyticActivity   Dimension = "catalytic_activity"
)

// definer stops at the first failing step
type definer struct {
	r   *Registry
	err error
}

func (d *definer) si(dim Dimension, symbol string) {
	if d.err == nil {
		d.err = d.r.DeclareSI(dim, symbol)
	}
}

func (d *definer) siExpr(dim Dimension, expression string) {
	if d.err == nil {
		d.err = d.r.DeclareCompoundSI(dim, expression)
	}
}

func (d *definer) def(s Spec) {
	if d.err == nil {
		d.err = d.r.Define(s)
	}
}

func (d *definer) base(symbol, name string, dim Dimension, factor float64) {
	d.def(Spec{Symbol: symbol, Name: name, Dimension: dim, Factor: factor})
}

func (d *definer) derived(symbol, name string, dim Dimension, expression string) {
	d.def(Spec{Symbol: symbol, Name: name, Dimension: dim, Expression: expression})
}

func (d *definer) expr(symbol, name, expression string) {
	d.def(Spec{Symbol: symbol, Name: name, Expression: expression})
}

func (d *definer) scaled(symbol, name string, factor float64, reference string) {
	d.def(Spec{Symbol: symbol, Name: name, Factor: factor, Reference: reference})
}

func (d *definer) biased(symbol, name string, factor float64, reference string, bias float64) {
	d.def(Spec{Symbol: symbol, Name: name, Factor: factor, Reference: reference, Bias: bias})
}

// RegisterStandard registers the SI system and common non-SI units on an
// open registry. Order matters: the first unit of a dimension with unit
// factor becomes its SI reference, and dimension inference scans in that
// order.
func RegisterStandard(r *Registry) error {
	d := &definer{r: r}

	d.si(Mass, "kg")
	d.si(Length, "m")
	d.si(Time, "s")
	d.si(ElectricCurrent, "A")
	d.si(Temperature, "K")
	d.si(LuminousIntensity, "cd")
	d.si(AmountOfSubstance, "mol")

	d.base("g", "gram", Mass, 1e-3)
	d.base("m", "meter", Length, 1)
	d.base("s", "second", Time, 1)
	d.base("A", "ampere", ElectricCurrent, 1)
	d.base("K", "kelvin", Temperature, 1)
	d.base("cd", "candela", LuminousIntensity, 1)
	d.base("mol", "mole", AmountOfSubstance, 1)

	d.siExpr(Speed, "m/s")
	d.siExpr(Acceleration, "m/s**2")
	d.siExpr(Area, "m**2")
	d.siExpr(Volume, "m**3")

	d.derived("W", "watt", Power, "kg*m**2/s**3")
	d.derived("Hz", "hertz", Frequency, "1/s")
	d.derived("N", "newton", Force, "m*kg/s**2")
	d.derived("Pa", "pascal", Pressure, "N/m**2")
	d.derived("J", "joule", Energy, "N*m")
	d.derived("C", "coulomb", ElectricCharge, "s*A")
	d.derived("V", "volt", Voltage, "W/A")
	d.derived("F", "farad", ElectricCapacitance, "C/V")
	d.derived("Ω", "ohm", ElectricResistance, "V/A")
	d.scaled("ohm", "ohm", 1, "Ω")
	d.derived("S", "siemens", ElectricConductance, "1/Ω")
	d.derived("Wb", "weber", MagneticFlux, "J/A")
	d.derived("T", "tesla", MagneticField, "N/(A*m)")
	d.derived("H", "henry", Inductance, "Wb/A")
	d.derived("rad", "radian", Angle, "m/m")
	d.derived("sr", "steradian", SolidAngle, "m**2/m**2")
	d.derived("lm", "lumen", LuminousFlux, "cd*sr")
	d.derived("lx", "lux", Illuminance, "lm/m**2")
	d.derived("nt", "nit", Luminance, "cd/m**2")
	d.derived("Bq", "becquerel", Radioactivity, "1/s")
	d.derived("Gy", "gray", AbsorbedDose, "J/kg")
	d.derived("Sv", "sievert", EquivalentDose, "J/kg")
	d.derived("kat", "katal", CatalyticActivity, "mol/s")

	d.scaled("min", "minute", 60, "s")
	d.scaled("h", "hour", 60, "min")
	d.scaled("d", "day", 24, "h")
	d.scaled("mi", "mile", 1.609344, "km")
	d.scaled("in", "inch", 2.54, "cm")
	d.scaled("ft", "foot", 0.3048, "m")
	d.scaled("inch", "inch", 1, "in")
	d.scaled("lb", "pound", 0.45359237, "kg")

	d.biased("°C", "degree Celsius", 1, "K", 273.15)
	d.biased("°F", "degree Fahrenheit", 5.0/9.0, "K", 459.67)
	d.scaled("R", "rankine", 5.0/9.0, "K")

	d.expr("l", "litre", "dm**3")
	d.scaled("L", "litre", 1, "l")

	d.scaled("°", "degree", math.Pi/180, "rad")
	d.scaled("′", "arc-minute", math.Pi/180/60, "rad")
	d.scaled("″", "arc-second", math.Pi/180/3600, "rad")
	d.scaled("deg", "degree", 1, "°")
	d.scaled("arcmin", "arc-minute", 1, "′")
	d.scaled("arcsec", "arc-second", 1, "″")

	d.expr("g0", "standard gravity", "9.80665*m/s**2")

	d.scaled("bar", "bar", 1e5, "Pa")
	d.scaled("atm", "atmosphere", 101325, "Pa")
	d.expr("mWC", "meters of water column", "1e3*kg*g0/m**2")
	d.expr("Torr", "torricelli", "atm/760")
	d.expr("mHg", "meters of mercury", "13.5951e3*kg*g0/m**2")

	d.expr("gf", "gram-force", "g*g0")
	d.expr("lbf", "pound-force", "lb*g0")

	d.scaled("dyn", "dyne", 10, "µN")
	d.expr("galUS", "U.S. liquid gallon", "231*in**3")
	d.scaled("galUK", "imperial gallon", 4.546092, "l")
	d.expr("hp", "horsepower", "550*ft*lbf/s")
	d.expr("psi", "pounds-force per square inch", "lbf/in**2")
	d.scaled("eV", "electronvolt", 1.602176487e-19, "J")

	return d.err
}
