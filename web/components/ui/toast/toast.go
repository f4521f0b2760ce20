// Package toast renders dismissable notification toasts for HTMX swaps.
package toast

import twmerge "github.com/Oudwins/tailwind-merge-go"

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight    Position = "top-right"
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
)

type Props struct {
	ID            string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds, 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
	Class         string
}

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-amber-500 bg-amber-50 text-amber-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionTopRight:    "top-4 right-4",
	PositionBottomRight: "bottom-4 right-4",
	PositionBottomLeft:  "bottom-4 left-4",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

// variant returns p.Variant, or VariantSuccess for unknown values.
func variant(p Props) Variant {
	if _, ok := variantClasses[p.Variant]; ok {
		return p.Variant
	}
	return VariantSuccess
}

func role(p Props) string {
	if variant(p) == VariantError {
		return "alert"
	}
	return "status"
}

// Classes returns the merged class list for p.
func Classes(p Props) string {
	v := variant(p)
	pos := p.Position
	if _, ok := positionClasses[pos]; !ok {
		pos = PositionBottomRight
	}
	return twmerge.Merge(
		"fixed z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg",
		variantClasses[v],
		positionClasses[pos],
		p.Class,
	)
}
