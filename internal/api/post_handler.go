package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/becketto/xscheduler/internal/api/dto"
	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/services"
	"github.com/becketto/xscheduler/internal/types"
	"github.com/becketto/xscheduler/internal/worker"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	postService       services.PostService
	credentialService services.CredentialService
	jobManager        *worker.JobManager
	appCtx            context.Context
}

func NewHandler(postService services.PostService, credentialService services.CredentialService, jobManager *worker.JobManager, ctx context.Context) *Handler {
	return &Handler{
		postService:       postService,
		credentialService: credentialService,
		jobManager:        jobManager,
		appCtx:            ctx,
	}
}

// schedulePostsHandler
// @Summary      Schedules a batch of posts
// @Description  Creates one pending post per line of the posts field, spaced by the given interval in minutes, starting after the account's existing pending queue.
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SchedulePostsRequest  true  "Posts and interval"
// @Success      201      {object}  dto.SchedulePostsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *Handler) schedulePostsHandler(c *gin.Context) {
	var req dto.SchedulePostsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	lines := strings.Split(req.Posts, "\n")

	created, err := h.postService.SchedulePosts(c.Request.Context(), req.AccountID, lines, req.IntervalMinutes)
	if err != nil {
		if types.KindOf(err) == types.Validation {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while scheduling posts."})
		return
	}

	c.JSON(http.StatusCreated, dto.SchedulePostsResponse{
		Posts:   toPostResponseList(created),
		Message: "Successfully scheduled " + strconv.Itoa(len(created)) + " posts",
	})
}

// listPostsHandler
// @Summary      Lists scheduled posts
// @Description  Returns the account's non-deleted posts ordered by scheduled time.
// @Tags         Posts
// @Produce      json
// @Param        accountId  query  int  true  "account id"
// @Success      200  {object}  dto.PostsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts [get]
func (h *Handler) listPostsHandler(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Query("accountId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while listing posts."})
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Posts: toPostResponseList(posts), Total: int64(len(posts))})
}

// getCompletedPostsHandler
// @Summary      Lists completed posts
// @Description  Fetches the account's completed posts newest-first by pagination.
// @Tags         Posts
// @Produce      json
// @Param        accountId  query  int  true   "account id"
// @Param        page       query  int  false  "page number"
// @Param        pageSize   query  int  false  "size of page"
// @Success      200  {object}  dto.PostsResponse
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/completed [get]
func (h *Handler) getCompletedPostsHandler(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Query("accountId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page size"})
		return
	}

	posts, total, err := h.postService.GetCompletedPosts(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching completed posts."})
		return
	}

	if len(posts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Posts: toPostResponseList(posts), Total: total})
}

// deletePostHandler
// @Summary      Deletes a post
// @Description  Soft-deletes a completed post, removes a pending or failed one. A post being published right now cannot be deleted.
// @Tags         Posts
// @Produce      json
// @Param        id  path  int  true  "post id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *Handler) deletePostHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case types.KindOf(err) == types.Validation:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while deleting post."})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// clearCompletedHandler
// @Summary      Clears completed posts
// @Description  Soft-deletes all of the account's completed posts.
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ClearCompletedRequest  true  "Account"
// @Success      200  {object}  dto.ClearCompletedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/clear-completed [post]
func (h *Handler) clearCompletedHandler(c *gin.Context) {
	var req dto.ClearCompletedRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	cleared, err := h.postService.ClearCompleted(c.Request.Context(), req.AccountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while clearing completed posts."})
		return
	}

	c.JSON(http.StatusOK, dto.ClearCompletedResponse{Cleared: cleared})
}

// connectAccountHandler
// @Summary      Stores X credentials for an account
// @Description  Exchanges an OAuth authorization code for tokens and stores them, overwriting any previous credential.
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        id       path  int                        true  "account id"
// @Param        request  body  dto.ConnectAccountRequest  true  "Authorization code"
// @Success      200  {object}  dto.ConnectAccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /accounts/{id}/credentials [post]
func (h *Handler) connectAccountHandler(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var req dto.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	cred, err := h.credentialService.Connect(c.Request.Context(), accountID, req.Code, req.CodeVerifier, req.RedirectURI)
	if err != nil {
		if types.KindOf(err) == types.Validation {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not connect X account: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ConnectAccountResponse{AccountID: cred.AccountID, ExpiresAt: cred.ExpiresAt})
}

// getQuotaHandler
// @Summary      Gets monthly quota usage
// @Description  Returns the current month's successful publish count and what remains of the monthly ceiling.
// @Tags         Quota
// @Produce      json
// @Success      200  {object}  dto.QuotaResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /quota [get]
func (h *Handler) getQuotaHandler(c *gin.Context) {
	status, err := h.postService.GetQuotaStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching quota."})
		return
	}

	c.JSON(http.StatusOK, dto.QuotaResponse{MonthYear: status.MonthYear, Used: status.Used, Remaining: status.Remaining})
}

// toggleDispatchJobHandler
// @Summary      Starts or stops the dispatch job
// @Description  Toggles the post dispatch job based on its current state.
// If it is running, it will be stopped; if it is stopped, it will be started.
// @Tags         Dispatch
// @Produce      json
// @Success      200  {object}  dto.DispatchJobResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /dispatch/toggle-job [put]
func (h *Handler) toggleDispatchJobHandler(c *gin.Context) {
	var err error
	var response dto.DispatchJobResponse

	if h.jobManager.IsRunning() {
		err = h.jobManager.Stop()
		response = dto.DispatchJobResponse{Status: "stopped"}
	} else {
		err = h.jobManager.Start(h.appCtx)
		response = dto.DispatchJobResponse{Status: "started"}
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

func toPostResponse(post domain.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:           post.ID,
		AccountID:    post.AccountID,
		Content:      post.Content,
		ScheduledFor: post.ScheduledFor,
		Status:       string(post.Status),
		Error:        post.Error,
	}
}

func toPostResponseList(posts []domain.Post) []dto.PostResponse {
	responseList := make([]dto.PostResponse, len(posts))
	for i, post := range posts {
		responseList[i] = toPostResponse(post)
	}
	return responseList
}
