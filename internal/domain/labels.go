package domain

// Канонические ярлыки операций.
const (
	OperationVenta            = "Venta"
	OperationAlquiler         = "Alquiler"
	OperationAlquilerTemporal = "Alquiler Temporal"
	// OperationAny — сентинел «любая операция», нейтральное значение фильтра
	OperationAny = "Cualquier operación"
)

// Канонические ярлыки типов недвижимости. Набор открытый:
// неизвестные ярлыки сравниваются буквально.
const (
	PropertyTypeDepartamento = "Departamento"
	PropertyTypeCasa         = "Casa"
	PropertyTypePH           = "PH"
	PropertyTypeTerreno      = "Terreno"
	PropertyTypeOficina      = "Oficina"
	PropertyTypeLocal        = "Local"
	PropertyTypeDuplex       = "Dúplex"
	// PropertyTypeAny — сентинел «любой тип», нейтральное значение фильтра
	PropertyTypeAny = "Cualquier tipo"
)

// operationSlugs — соответствие URL-слагов каноническим ярлыкам операций.
var operationSlugs = map[string]string{
	"venta":                OperationVenta,
	"alquiler":             OperationAlquiler,
	"alquiler-temporal":    OperationAlquilerTemporal,
	"cualquier-operacion":  OperationAny,
}

// propertyTypeSlugs — соответствие URL-слагов каноническим ярлыкам типов.
var propertyTypeSlugs = map[string]string{
	"departamento":   PropertyTypeDepartamento,
	"casa":           PropertyTypeCasa,
	"ph":             PropertyTypePH,
	"terreno":        PropertyTypeTerreno,
	"oficina":        PropertyTypeOficina,
	"local":          PropertyTypeLocal,
	"duplex":         PropertyTypeDuplex,
	"cualquier-tipo": PropertyTypeAny,
}

// OperationFromSlug преобразует слаг операции в канонический ярлык.
// Неизвестные слаги проходят без преобразования и сравниваются буквально.
func OperationFromSlug(slug string) string {
	if label, ok := operationSlugs[slug]; ok {
		return label
	}
	return slug
}

// SlugForOperation — обратное преобразование для сериализации URL.
func SlugForOperation(label string) string {
	for slug, l := range operationSlugs {
		if l == label {
			return slug
		}
	}
	return label
}

// PropertyTypeFromSlug преобразует слаг типа недвижимости в канонический ярлык.
func PropertyTypeFromSlug(slug string) string {
	if label, ok := propertyTypeSlugs[slug]; ok {
		return label
	}
	return slug
}

// SlugForPropertyType — обратное преобразование для сериализации URL.
func SlugForPropertyType(label string) string {
	for slug, l := range propertyTypeSlugs {
		if l == label {
			return slug
		}
	}
	return label
}
