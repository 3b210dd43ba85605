package templates

import (
	"context"

	"github.com/a-h/templ"
)

const layoutStyles = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f3ef; color: #212529; }
header.topbar { background: #212529; color: #fff; padding: 10px 16px; display: flex; justify-content: space-between; align-items: center; }
header.topbar a { color: #fff; text-decoration: none; margin-left: 12px; font-size: 14px; }
main { max-width: 1100px; margin: 16px auto; padding: 0 12px; }
.card { background: #fff; border-radius: 8px; padding: 16px; margin-bottom: 16px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(180px, 1fr)); gap: 10px; }
label { display: block; font-size: 12px; color: #646464; margin-bottom: 2px; }
input, textarea { width: 100%; box-sizing: border-box; padding: 6px; border: 1px solid #ccc; border-radius: 4px; }
input[readonly] { background: #f0f0f0; font-weight: bold; }
.actions { display: flex; gap: 8px; flex-wrap: wrap; }
button, .button { background: #212529; color: #fff; border: 0; border-radius: 4px; padding: 8px 14px; cursor: pointer; text-decoration: none; font-size: 14px; }
button.secondary, .button.secondary { background: #6c757d; }
button.danger { background: #dc2626; }
.totals { display: grid; grid-template-columns: repeat(4, 1fr); gap: 8px; font-weight: bold; }
.error { color: #dc2626; font-size: 12px; }
#toast { position: fixed; bottom: 16px; right: 16px; }
`

const toastScript = `
document.body.addEventListener("showToast", function (evt) {
  var t = document.getElementById("toast");
  t.textContent = evt.detail.message;
  t.className = evt.detail.type;
  setTimeout(function () { t.textContent = ""; }, 4000);
});
`

// Page wraps body in the application shell.
func Page(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><script src="https://unpkg.com/htmx.org@2.0.4"></script><style>`)
		h.raw(layoutStyles)
		h.raw(`</style></head><body>`)
		h.raw(`<header class="topbar"><strong>Invoice Generator</strong><nav>`)
		h.raw(`<a href="/invoice">Invoice</a><a href="/settings/company">Company</a></nav></header>`)
		h.raw(`<main>`)
		h.render(ctx, body)
		h.raw(`</main><div id="toast"></div><script>`)
		h.raw(toastScript)
		h.raw(`</script></body></html>`)
	})
}
