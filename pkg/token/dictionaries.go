package token

// SystemLabels maps system-computed placeholder names to their human
// descriptions. current_year is resolved too but only as a fallback, so it is
// deliberately absent here.
var SystemLabels = map[string]string{
	"current_date":     "Текущая дата",
	"current_datetime": "Текущая дата и время",
	"template_version": "Версия шаблона",
	"template_name":    "Название шаблона",
	"user_full_name":   "ФИО пользователя",
}

// PresetLabels maps preset organization-field codes to display labels. These
// are the codes administrators can pick from when configuring requisites.
var PresetLabels = map[string]string{
	"name_full":      "Полное наименование организации",
	"name_short":     "Краткое наименование",
	"inn":            "ИНН",
	"kpp":            "КПП",
	"ogrn":           "ОГРН",
	"ogrnip":         "ОГРНИП",
	"address_legal":  "Юридический адрес",
	"address_postal": "Почтовый адрес",
	"phone":          "Телефон",
	"email":          "Email",
	"head_title":     "Должность руководителя",
	"head_fio":       "ФИО руководителя",
	"authority_base": "Действует на основании",
	"bank_bik":       "БИК банка",
	"bank_name":      "Наименование банка",
	"bank_ks":        "Корреспондентский счёт",
	"bank_rs":        "Расчётный счёт",
}

// defaultFieldLabels backs FieldLabel. It is a superset of PresetLabels with
// shorter display variants used in generated requisites sections.
var defaultFieldLabels = map[string]string{
	"name_full":      "Полное наименование",
	"name_short":     "Краткое наименование",
	"inn":            "ИНН",
	"kpp":            "КПП",
	"ogrn":           "ОГРН",
	"ogrnip":         "ОГРНИП",
	"okpo":           "ОКПО",
	"okved":          "ОКВЭД",
	"address_legal":  "Юридический адрес",
	"address_postal": "Почтовый адрес",
	"phone":          "Телефон",
	"email":          "Email",
	"website":        "Веб-сайт",
	"head_title":     "Должность руководителя",
	"head_fio":       "ФИО руководителя",
	"authority_base": "Действует на основании",
	"poa_number":     "Номер доверенности",
	"poa_date":       "Дата доверенности",
	"bank_bik":       "БИК банка",
	"bank_name":      "Наименование банка",
	"bank_ks":        "Корр. счёт",
	"bank_rs":        "Расчётный счёт",
	"seal_note":      "Примечание о печати",
	"notes":          "Заметки",
}

// FieldLabel returns the default display label for a field code, falling back
// to the code itself.
func FieldLabel(code string) string {
	if label, ok := defaultFieldLabels[code]; ok {
		return label
	}
	return code
}
