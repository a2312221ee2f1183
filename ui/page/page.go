package page

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HomePage is the single page. It renders the static shell; the list itself
// is drawn by /static/js/app.js from /api/state.
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ticklist</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
<main class="app">
	<h1>ticklist</h1>
	<form id="add-form" autocomplete="off">
		<input id="add-input" type="text" placeholder="What needs doing?" aria-label="New task">
		<button type="submit">Add</button>
	</form>
	<nav id="filters" aria-label="Filters">
		<button data-filter="all" class="active">All</button>
		<button data-filter="active">Active</button>
		<button data-filter="completed">Completed</button>
	</nav>
	<ul id="task-list"></ul>
	<footer>
		<span id="counts"></span>
		<button id="clear-all" hidden>Clear all</button>
	</footer>
</main>
<script src="/static/js/app.js"></script>
</body>
</html>
`)
		return err
	})
}
