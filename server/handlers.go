package server

import (
	"encoding/hex"
	"net/http"
	"strconv"

	"debatearena/config"
	"debatearena/models"
	"debatearena/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Handler exposes the settlement core over HTTP
type Handler struct {
	platformService service.PlatformService
	userService     service.UserService
	topicService    service.TopicService
	debateService   service.DebateService
	bettingService  service.BettingService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	platformService service.PlatformService,
	userService service.UserService,
	topicService service.TopicService,
	debateService service.DebateService,
	bettingService service.BettingService,
) *Handler {
	return &Handler{
		platformService: platformService,
		userService:     userService,
		topicService:    topicService,
		debateService:   debateService,
		bettingService:  bettingService,
	}
}

// RegisterRoutes registers all routes on the given router group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/platform/initialize", h.initializePlatform)
	api.GET("/platform", h.getPlatform)

	api.POST("/users", h.registerUser)
	api.GET("/users/:id", h.getUser)
	api.GET("/users/:id/ledger", h.getUserLedger)

	api.POST("/agents", h.registerAgent)
	api.POST("/agents/:id/rating", h.updateAgentRating)

	api.POST("/topics", h.proposeTopic)
	api.POST("/topics/:id/votes", h.voteTopic)

	api.POST("/debates", h.createDebate)
	api.GET("/debates/:id", h.getDebate)
	api.GET("/debates/:id/rounds", h.getRounds)
	api.POST("/debates/:id/start", h.startDebate)
	api.POST("/debates/:id/rounds", h.submitRoundResult)
	api.POST("/debates/:id/settle", h.settleDebate)

	api.POST("/debates/:id/bets", h.placeBet)
	api.GET("/debates/:id/bets/:bettor_id", h.getBet)
	api.POST("/debates/:id/claims", h.claimBet)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type initializePlatformRequest struct {
	AuthorityID int64  `json:"authority_id" binding:"required"`
	TreasuryID  int64  `json:"treasury_id" binding:"required"`
	FeeBps      *int64 `json:"fee_bps"`
}

func (h *Handler) initializePlatform(c *gin.Context) {
	var req initializePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Omitting fee_bps falls back to the configured default
	feeBps := config.Get().DefaultFeeBps
	if req.FeeBps != nil {
		feeBps = *req.FeeBps
	}

	platform, err := h.platformService.Initialize(c.Request.Context(), req.AuthorityID, req.TreasuryID, feeBps)
	if err != nil {
		log.WithError(err).Warn("Platform initialization failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, platform)
}

func (h *Handler) getPlatform(c *gin.Context) {
	platform, err := h.platformService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, platform)
}

type registerUserRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *Handler) registerUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) getUserLedger(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.userService.GetLedger(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

type registerAgentRequest struct {
	OwnerID      int64  `json:"owner_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	EndpointHash string `json:"endpoint_hash"`
}

func (h *Handler) registerAgent(c *gin.Context) {
	var req registerAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := hex.DecodeString(req.EndpointHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint_hash must be hex"})
		return
	}

	agent, err := h.userService.RegisterAgent(c.Request.Context(), req.OwnerID, req.Name, hash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, agent)
}

type updateAgentRatingRequest struct {
	CallerID int64 `json:"caller_id" binding:"required"`
	Rating   int32 `json:"rating" binding:"required"`
	Won      bool  `json:"won"`
}

func (h *Handler) updateAgentRating(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateAgentRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateAgentRating(c.Request.Context(), req.CallerID, agentID, req.Rating, req.Won); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type proposeTopicRequest struct {
	ProposerID int64  `json:"proposer_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Category   string `json:"category"`
}

func (h *Handler) proposeTopic(c *gin.Context) {
	var req proposeTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.topicService.ProposeTopic(c.Request.Context(), req.ProposerID, req.Text, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

type voteTopicRequest struct {
	VoterID int64 `json:"voter_id" binding:"required"`
	Upvote  *bool `json:"upvote" binding:"required"`
}

func (h *Handler) voteTopic(c *gin.Context) {
	topicID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req voteTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.topicService.VoteTopic(c.Request.Context(), req.VoterID, topicID, *req.Upvote)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

type createDebateRequest struct {
	ProAgentID  int64  `json:"pro_agent_id" binding:"required"`
	ConAgentID  int64  `json:"con_agent_id" binding:"required"`
	Topic       string `json:"topic" binding:"required"`
	StakeAmount int64  `json:"stake_amount" binding:"required"`
}

func (h *Handler) createDebate(c *gin.Context) {
	var req createDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debate, err := h.debateService.CreateDebate(c.Request.Context(), req.ProAgentID, req.ConAgentID, req.Topic, req.StakeAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, debate)
}

func (h *Handler) getDebate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	debate, err := h.debateService.GetDebate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, debate)
}

func (h *Handler) getRounds(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rounds, err := h.debateService.GetRounds(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rounds)
}

type callerRequest struct {
	CallerID int64 `json:"caller_id" binding:"required"`
}

func (h *Handler) startDebate(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req callerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debate, err := h.debateService.StartDebate(c.Request.Context(), req.CallerID, debateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, debate)
}

type submitRoundRequest struct {
	CallerID int64 `json:"caller_id" binding:"required"`
	Round    int16 `json:"round" binding:"required"`
	ProVotes int64 `json:"pro_votes"`
	ConVotes int64 `json:"con_votes"`
}

func (h *Handler) submitRoundResult(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req submitRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debate, err := h.debateService.SubmitRoundResult(c.Request.Context(), req.CallerID, debateID, req.Round, req.ProVotes, req.ConVotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, debate)
}

type settleDebateRequest struct {
	CallerID int64             `json:"caller_id" binding:"required"`
	Winner   models.DebateSide `json:"winner" binding:"required"`
	PayeeID  int64             `json:"payee_id" binding:"required"`
}

func (h *Handler) settleDebate(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req settleDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.debateService.SettleDebate(c.Request.Context(), req.CallerID, debateID, req.Winner, req.PayeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type placeBetRequest struct {
	BettorID int64             `json:"bettor_id" binding:"required"`
	Side     models.DebateSide `json:"side" binding:"required"`
	Amount   int64             `json:"amount" binding:"required"`
}

func (h *Handler) placeBet(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.bettingService.PlaceBet(c.Request.Context(), req.BettorID, debateID, req.Side, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bet)
}

func (h *Handler) getBet(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	bettorID, ok := pathID(c, "bettor_id")
	if !ok {
		return
	}

	bet, err := h.bettingService.GetBet(c.Request.Context(), debateID, bettorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bet)
}

type claimBetRequest struct {
	BettorID int64 `json:"bettor_id" binding:"required"`
}

func (h *Handler) claimBet(c *gin.Context) {
	debateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req claimBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.bettingService.ClaimBet(c.Request.Context(), req.BettorID, debateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
