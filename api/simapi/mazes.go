package simapi

import (
	"net/http"

	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController manages stored maze definitions over HTTP.
type MazeController struct {
	catalog i.MazeCatalog
}

// NewMazeController initializes a MazeController.
func NewMazeController(c i.MazeCatalog) (*MazeController, error) {
	return &MazeController{
		catalog: c,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", mc.create)
		mazes.POST("/generate", mc.generate)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/render", mc.render)
	}
}

// create stores a maze from a text definition.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.catalog.Create(request.Name, request.Definition)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

// generate stores a freshly generated maze.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.catalog.Generate(request.Name, request.Dim)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

// byID retrieves a stored maze.
func (mc *MazeController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := mc.catalog.Get(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

// render returns the ASCII rendering of a stored maze.
func (mc *MazeController) render(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	rendering, err := mc.catalog.Render(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.String(http.StatusOK, rendering)
}
