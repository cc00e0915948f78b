package criteria

import (
	"github.com/viant/printshare/service/dao"
)

// FilterByState reports whether state satisfies the State parameter, if any.
// Parameters with other names are ignored.
func FilterByState(state string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.ParameterState {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if state != actual {
				return false
			}
		case []string:
			if len(actual) == 0 {
				continue
			}
			matched := false
			for _, s := range actual {
				if state == s {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}
