package router

import "html/template"

// pageData fills the interactive chart page.
type pageData struct {
	Component  string
	SVG        template.HTML
	Offset     int
	MaxOffset  int
	WindowSize int
	Start      string
	End        string
}

var pageTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>volscope: {{.Component}}</title>
<style>
body{font-family:sans-serif;margin:24px;color:#222}
#chart svg{max-width:100%;height:auto}
.controls{display:flex;gap:12px;align-items:center;margin-top:8px;max-width:960px}
.controls input[type=range]{flex:1}
.controls label{font-size:13px;color:#555}
#range{font-size:13px;font-family:monospace;color:#555;margin-top:4px}
</style>
</head>
<body>
<div id="chart">{{.SVG}}</div>
<div class="controls">
  <label for="scroll">Scroll</label>
  <input type="range" id="scroll" min="0" max="{{.MaxOffset}}" step="1" value="{{.Offset}}">
</div>
<div id="range">{{.Start}} to {{.End}}</div>
<script>
const slider = document.getElementById("scroll");
const proto = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(proto + location.host + "/view/ws");
ws.onmessage = (ev) => {
  const upd = JSON.parse(ev.data);
  document.getElementById("chart").innerHTML = upd.svg;
  document.getElementById("range").textContent = upd.start + " to " + upd.end;
  slider.value = upd.offset;
};
slider.addEventListener("input", () => {
  if (ws.readyState === WebSocket.OPEN) {
    ws.send(JSON.stringify({offset: parseInt(slider.value, 10)}));
  }
});
</script>
</body>
</html>
`
