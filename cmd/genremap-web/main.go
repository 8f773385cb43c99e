// genremap-web serves the interactive mapper viewer: an HTML form for
// ad-hoc cases plus a JSON API. Snippets pasted from web pages are
// stripped of markup before mapping.
package main

import (
	"flag"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cognicore/genremap/internal/htmltext"
	"github.com/cognicore/genremap/pkg/genremap"
	"github.com/cognicore/genremap/pkg/genremap/config"
)

const page = `<!doctype html>
<html>
<head><title>Adaptive Genre Taxonomy Mapper</title></head>
<body>
<h1>Adaptive Genre Taxonomy Mapper</h1>
<p>Enter comma-separated tags and a story snippet. The mapper returns a
taxonomy leaf (or <code>[UNMAPPED]</code>) with an explanation.</p>
<form method="post" action="/map">
  <p><label>Tags (comma-separated)<br><input name="tags" size="60" value="{{.Tags}}"></label></p>
  <p><label>Story snippet<br><textarea name="snippet" rows="6" cols="60">{{.Snippet}}</textarea></label></p>
  <p><button type="submit">Map to Taxonomy</button></p>
</form>
{{if .Result}}
<h2>Result</h2>
<p><b>Mapped:</b> {{.Result.Mapped}}</p>
{{if .Result.Path}}<p><b>Path:</b> {{join .Result.Path " / "}}</p>{{end}}
<p><b>Confidence:</b> {{printf "%.2f" .Result.Confidence}}</p>
<p><b>Reasoning:</b> {{.Result.Reasoning}}</p>
{{if .Result.Scores}}
<h3>Top Scores</h3>
<table border="1" cellpadding="4">
<tr><th>Leaf</th><th>Score</th></tr>
{{range $leaf, $score := .Result.Scores}}<tr><td>{{$leaf}}</td><td>{{printf "%.1f" $score}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`

type pageData struct {
	Tags    string
	Snippet string
	Result  *genremap.MappingResult
}

type mapRequest struct {
	ID       int      `json:"id"`
	UserTags []string `json:"user_tags"`
	Snippet  string   `json:"snippet"`
}

func main() {
	var (
		taxonomyPath = flag.String("taxonomy", "data/taxonomy.json", "taxonomy file (JSON or YAML)")
		lexiconPath  = flag.String("lexicon", "", "lexicon YAML (default: built-in fiction lexicon)")
		signalsPath  = flag.String("signals", "", "non-fiction signals YAML (default: built-in)")
	)
	flag.Parse()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()
	addr := os.Getenv("GENREMAP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	loader := &config.Loader{
		TaxonomyPath: *taxonomyPath,
		LexiconPath:  *lexiconPath,
		SignalsPath:  *signalsPath,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	mapper, err := genremap.New(genremap.Options{
		Taxonomy: comp.Taxonomy,
		Lexicon:  comp.Lexicon,
		Detector: comp.Detector,
	})
	if err != nil {
		log.Fatalf("build mapper: %v", err)
	}

	r := gin.Default()
	tmpl := template.Must(template.New("index").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(page))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index", pageData{})
	})

	r.POST("/map", func(c *gin.Context) {
		tagsCSV := c.PostForm("tags")
		snippet := htmltext.Strip(c.PostForm("snippet"))

		res := mapper.Map(0, splitTags(tagsCSV), snippet)
		c.HTML(http.StatusOK, "index", pageData{
			Tags:    tagsCSV,
			Snippet: snippet,
			Result:  &res,
		})
	})

	api := r.Group("/api")
	api.Use(cors.Default())
	api.POST("/map", func(c *gin.Context) {
		var req mapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res := mapper.Map(req.ID, req.UserTags, htmltext.Strip(req.Snippet))
		c.JSON(http.StatusOK, res)
	})

	log.Printf("genremap-web listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func splitTags(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
