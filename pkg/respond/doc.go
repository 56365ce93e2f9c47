// Package respond writes templ components either as full HTML or, for
// Datastar requests, as element patches over server-sent events.
//
//	func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
//		errs := h.validate(book)
//		component, _ := h.lib.ErrorsComponent(r.Context(), tags.Attrs{Bean: errs})
//		_ = respond.Templ(w, r, component, respond.WithTarget("#errors"), respond.WithPatchMode(respond.PatchInner))
//	}
package respond
