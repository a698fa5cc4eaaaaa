package resolve

import "github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"

// fieldRule binds a field name and accepted types to a role.
type fieldRule struct {
	name  string
	types []models.FieldType
	role  models.Role
}

var (
	stringOnly     = []models.FieldType{models.FieldTypeString}
	numberOnly     = []models.FieldType{models.FieldTypeNumber}
	stringOrNumber = []models.FieldType{models.FieldTypeString, models.FieldTypeNumber}
)

var commonRules = []fieldRule{
	{"image", stringOnly, models.RoleImage},
	{"label", stringOrNumber, models.RoleLabel},
	{"imagetype", stringOnly, models.RoleImageType},
	{"top", numberOnly, models.RoleOverlayTop},
	{"left", numberOnly, models.RoleOverlayLeft},
	{"width", numberOnly, models.RoleOverlayWidth},
	{"height", numberOnly, models.RoleOverlayHeight},
}

var singleRules = append([]fieldRule{
	{"value", numberOnly, models.RolePrimaryValue},
}, commonRules...)

var dualRules = append([]fieldRule{
	{"value1", numberOnly, models.RolePrimaryValue},
	{"value2", numberOnly, models.RoleSecondaryValue},
}, commonRules...)

func rulesFor(v models.Variant) []fieldRule {
	if v == models.VariantSingle {
		return singleRules
	}
	return dualRules
}

// Fields scans the frame once and binds each role to the first field whose
// name and type match. Unmatched roles stay absent.
func Fields(frame models.Frame, variant models.Variant) models.RoleMap {
	rules := rulesFor(variant)
	roles := models.NewRoleMap()

	for i, field := range frame.Fields {
		for _, rule := range rules {
			if rule.name == field.Name && acceptsType(rule.types, field.Type) {
				roles = roles.Bind(rule.role, i)
				break
			}
		}
	}

	return roles
}

func acceptsType(types []models.FieldType, t models.FieldType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
