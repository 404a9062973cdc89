package routes

import (
	"net/http"

	"github.com/just-nibble/git-digest/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(
	repositoryHandler *handlers.RepositoryHandler,
	commitHandler *handlers.CommitHandler,
	postHandler *handlers.PostHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	runHandler *handlers.RunHandler,
) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /repositories", repositoryHandler.Register)
	router.HandleFunc("GET /repositories", repositoryHandler.List)
	router.HandleFunc("PATCH /repositories/{id}/active", repositoryHandler.SetActive)
	router.HandleFunc("DELETE /repositories/{id}", repositoryHandler.Delete)
	router.HandleFunc("GET /repositories/stats", repositoryHandler.Stats)
	router.HandleFunc("GET /repositories/{id}/contributors", repositoryHandler.TopContributors)

	router.HandleFunc("POST /repositories/{id}/commits", commitHandler.Ingest)
	router.HandleFunc("GET /repositories/{id}/commits", commitHandler.List)
	router.HandleFunc("PATCH /commits/{id}/kind", commitHandler.Reclassify)

	router.HandleFunc("POST /posts", postHandler.Create)
	router.HandleFunc("GET /posts", postHandler.ByTag)
	router.HandleFunc("GET /posts/search", postHandler.Search)
	router.HandleFunc("GET /posts/{id}", postHandler.Get)
	router.HandleFunc("GET /repositories/{id}/posts", postHandler.ListByRepository)
	router.HandleFunc("POST /posts/{id}/engagement", postHandler.RecordEngagement)
	router.HandleFunc("POST /posts/{id}/tags", postHandler.Tag)
	router.HandleFunc("GET /posts/{id}/performance", postHandler.Performance)

	router.HandleFunc("POST /posts/{id}/events", analyticsHandler.RecordEvent)

	router.HandleFunc("POST /runs", runHandler.Begin)
	router.HandleFunc("PATCH /runs/{id}/complete", runHandler.Complete)
	router.HandleFunc("GET /repositories/{id}/runs", runHandler.Health)

	// Serve Swagger documentation
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	return router
}
