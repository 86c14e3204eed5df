package vector

import "html/template"

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body {
  margin: 0;
  font-family: sans-serif;
  display: flex;
  flex-direction: column;
  align-items: center;
}
#title { margin: 20px 0 0; font-size: 28px; }
#subtitle { margin: 4px 0 10px; font-size: 18px; font-weight: normal; }
.dot { stroke: black; stroke-width: 0.5; }
.dot:hover { stroke-width: 2; }
#legend text { font-size: 12px; }
#{{.TooltipID}} { font-size: 12px; line-height: 1.4; transition-property: opacity; }
</style>
</head>
<body>
<h1 id="title">{{.Title}}</h1>
<h2 id="subtitle">{{.Subtitle}}</h2>
{{.Body}}
<script>
(function () {
  var fadeIn = {{.FadeInMS}};
  var fadeOut = {{.FadeOutMS}};
  var offsetX = {{.OffsetX}};
  var offsetY = {{.OffsetY}};
  var tip = document.getElementById({{.TooltipID}});
  if (!tip) {
    return;
  }
  function fade(opacity, ms) {
    tip.style.transition = "opacity " + ms + "ms";
    tip.style.opacity = opacity;
  }
  document.querySelectorAll("circle.{{.MarkClass}}").forEach(function (dot) {
    dot.addEventListener("mouseover", function (ev) {
      fade(1, fadeIn);
      tip.innerHTML = dot.dataset.tooltip;
      tip.dataset.year = dot.dataset.xvalue;
      tip.dataset.time = dot.dataset.time;
      tip.style.left = (ev.pageX + offsetX) + "px";
      tip.style.top = (ev.pageY + offsetY) + "px";
    });
    dot.addEventListener("mouseout", function () {
      fade(0, fadeOut);
    });
  });
})();
</script>
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Title     string
	Subtitle  string
	Body      template.HTML
	TooltipID string
	MarkClass string
	FadeInMS  int64
	FadeOutMS int64
	OffsetX   int
	OffsetY   int
}
