// Package clientscript generates browser-side validation code from
// constraint metadata.
//
// Each constraint kind maps to zero or more rule types (see RuleTypesFor).
// Rules are grouped by type in order of first appearance. For every group
// the generator emits the validator fragment validation/{ruleType}.js,
// when one exists, and a function {form}_{ruleType} describing the
// constrained fields. A validateForm(form) function then runs the
// validate{RuleType} function of every group, stopping at the first
// failure, and the form's onsubmit handler is bound to it.
//
// Generation builds a Script value first. RenderScript turns it into a
// single <script type="text/javascript"> block.
package clientscript
