package simapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/beka-birhanu/micromouse-api/api/identity"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const runTimeout = 30 * time.Second

// RunController executes and retrieves simulation runs over HTTP.
type RunController struct {
	runService i.RunService
}

// NewRunController initializes a RunController.
func NewRunController(rs i.RunService) (*RunController, error) {
	return &RunController{
		runService: rs,
	}, nil
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("/", rc.execute)
		runs.GET("/:ID", rc.byID)
		runs.GET("/:ID/trace", rc.trace)
	}
}

// execute runs the full simulation cycle on a stored maze for the
// authenticated operator.
func (rc *RunController) execute(ctx *gin.Context) {
	var request RunRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mazeID, err := uuid.Parse(request.MazeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	userID, ok := claimedUserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	run, err := rc.runService.Execute(timeoutCtx, userID, mazeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newRunResponse(run))
}

// byID retrieves a persisted run.
func (rc *RunController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	run, err := rc.runService.Get(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(run))
}

// trace streams the persisted trace of a run, one JSON record per line.
func (rc *RunController) trace(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	run, err := rc.runService.Get(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Content-Type", "application/x-ndjson")
	ctx.Status(http.StatusOK)
	enc := json.NewEncoder(ctx.Writer)
	for _, entry := range run.Trace {
		if err := enc.Encode(entry); err != nil {
			return
		}
	}
}

// claimedUserID extracts the operator ID from the JWT claims attached by
// the authorization middleware.
func claimedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(identity.ContextUserClaims)
	if !exists {
		return uuid.Nil, false
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}

	idString, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
