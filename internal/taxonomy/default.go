package taxonomy

var defaultRows = []Key{
	{"technology", "saas", "horizontal"},
	{"technology", "saas", "vertical"},
	{"technology", "saas", "devtools"},
	{"technology", "fintech", "payments"},
	{"technology", "fintech", "lending"},
	{"technology", "fintech", "insurtech"},
	{"technology", "marketplace", "b2b"},
	{"technology", "marketplace", "b2c"},
	{"technology", "ai_ml", "infrastructure"},
	{"technology", "ai_ml", "applications"},
	{"healthcare", "digital_health", "telemedicine"},
	{"healthcare", "digital_health", "wellness"},
	{"healthcare", "medtech", "devices"},
	{"healthcare", "medtech", "diagnostics"},
	{"healthcare", "biotech", "therapeutics"},
	{"consumer", "ecommerce", "general"},
	{"consumer", "ecommerce", "specialty"},
	{"consumer", "d2c", "apparel"},
	{"consumer", "d2c", "food_beverage"},
	{"industrial", "cleantech", "energy"},
	{"industrial", "cleantech", "mobility"},
	{"industrial", "manufacturing", "robotics"},
	{"industrial", "manufacturing", "materials"},
}

var defaultTable = New(defaultRows)

// Default returns the built-in taxonomy
func Default() *Table {
	return defaultTable
}
