// Package pages holds the full-page components of the site.
package pages

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/cristianadrielbraun/upiqr/internal/upi"
	"github.com/cristianadrielbraun/upiqr/web/components"
	"github.com/cristianadrielbraun/upiqr/web/components/ui/toast"
)

// HomeProps is everything the home page can show: the form (with inline
// errors after a rejected submit), the generated QR and an optional notice.
type HomeProps struct {
	Form   upi.Form
	Errors upi.ValidationErrors
	QR     *components.QRData
	Toast  *toast.Props
}

type field struct {
	name, label, placeholder, kind string
	maxLength                      int
	value                          func(upi.Form) string
}

var fields = []field{
	{name: "vpa", label: "Virtual Payment Address (VPA)", placeholder: "example@upi", kind: "text",
		value: func(f upi.Form) string { return f.VPA }},
	{name: "amount", label: "Amount (₹)", placeholder: "100", kind: "number",
		value: func(f upi.Form) string { return f.Amount }},
	{name: "name", label: "Payee Name", placeholder: "John Doe", kind: "text",
		value: func(f upi.Form) string { return f.Name }},
	{name: "remark", label: "Remark (max 15 chars)", placeholder: "Payment for...", kind: "text",
		maxLength: upi.MaxRemarkLength, value: func(f upi.Form) string { return f.Remark }},
}

const inputClass = "w-full rounded-md border border-neutral-300 bg-white/50 px-3 py-2 focus:bg-white/80"

func buttonClass(extra string) string {
	return twmerge.Merge("rounded-md px-4 py-2 font-medium disabled:opacity-50 disabled:cursor-not-allowed", extra)
}

// downloadScript downloads through fetch so both buttons stay disabled until the
// file arrives, and asks the server for an error toast when it fails.
const downloadScript = `<script>
(function () {
  var toasts = document.getElementById("toasts");
  function wireToast(el) {
    var d = parseInt(el.getAttribute("data-duration") || "0", 10);
    var btn = el.querySelector("[data-toast-dismiss]");
    if (btn) btn.addEventListener("click", function () { el.remove(); });
    if (d > 0) setTimeout(function () { el.remove(); }, d);
  }
  document.querySelectorAll("[data-toast]").forEach(wireToast);
  function notify(title, description) {
    var body = new URLSearchParams({title: title, description: description, variant: "error", dismissible: "on"});
    fetch("/api/htmx/toast", {method: "POST", body: body}).then(function (r) { return r.text(); }).then(function (html) {
      toasts.insertAdjacentHTML("beforeend", html);
      wireToast(toasts.lastElementChild);
    });
  }
  var links = Array.prototype.slice.call(document.querySelectorAll("[data-download]"));
  links.forEach(function (a) {
    a.addEventListener("click", function (ev) {
      ev.preventDefault();
      if (a.getAttribute("aria-disabled") === "true") return;
      var labels = links.map(function (l) { return l.textContent; });
      links.forEach(function (l) { l.setAttribute("aria-disabled", "true"); l.classList.add("opacity-50", "pointer-events-none"); l.textContent = "Processing..."; });
      fetch(a.href).then(function (r) {
        if (!r.ok) return r.json().then(function (j) { throw new Error(j.error || r.statusText); });
        var cd = r.headers.get("Content-Disposition") || "";
        var m = /filename="?([^";]+)"?/.exec(cd);
        return r.blob().then(function (blob) {
          var url = URL.createObjectURL(blob);
          var tmp = document.createElement("a");
          tmp.href = url;
          tmp.download = m ? m[1] : "";
          document.body.appendChild(tmp);
          tmp.click();
          tmp.remove();
          URL.revokeObjectURL(url);
        });
      }).catch(function (err) {
        notify("Failed to download QR code", err.message + ". Please try again.");
      }).finally(function () {
        links.forEach(function (l, i) { l.removeAttribute("aria-disabled"); l.classList.remove("opacity-50", "pointer-events-none"); l.textContent = labels[i]; });
      });
    });
  });
})();
</script>`
