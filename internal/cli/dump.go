package cli

import "github.com/k0kubun/pp/v3"

// dump pretty-prints v without colors for the debug log
func dump(v any) string {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p.Sprint(v)
}
