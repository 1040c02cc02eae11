package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// CampaignRequest represents a new fundraising campaign
type CampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goalAmount"`
}

// DonationRequest represents a donation to a campaign
type DonationRequest struct {
	Amount int64 `json:"amount"`
}

// HandleCampaigns serves GET (list) and POST (create).
func (s *Server) HandleCampaigns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			limit, offset := parseListParams(r)
			campaigns, err := s.DB.ListCampaigns(r.Context(), limit, offset)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, campaigns)

		case http.MethodPost:
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var req CampaignRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if strings.TrimSpace(req.Title) == "" || req.GoalAmount <= 0 {
				respondError(w, utils.NewAppError(utils.ErrInvalidInput, "title and a positive goal amount are required", nil))
				return
			}

			campaign := &models.Campaign{
				ID:          uuid.New(),
				Title:       req.Title,
				Description: req.Description,
				GoalAmount:  req.GoalAmount,
				OwnerID:     userID,
			}
			if err := s.DB.SaveCampaign(r.Context(), campaign); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, campaign)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleCampaignByID serves GET for one campaign.
func (s *Server) HandleCampaignByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid campaign ID format", http.StatusBadRequest)
			return
		}
		campaign, err := s.DB.GetCampaign(r.Context(), campaignID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, campaign)
	}
}

// HandleCampaignClose closes a campaign to further donations. Owner only.
func (s *Server) HandleCampaignClose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid campaign ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		if err := s.DB.CloseCampaign(r.Context(), campaignID, userID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "campaign closed"})
	}
}

// HandleDonate records a donation and returns the campaign with its
// recomputed raised amount. The owner is notified.
func (s *Server) HandleDonate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid campaign ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req DonationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		campaign, err := s.DB.RecordDonation(r.Context(), &models.Donation{
			ID:         uuid.New(),
			CampaignID: campaignID,
			DonorID:    userID,
			Amount:     req.Amount,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		if campaign.OwnerID != userID {
			s.notify(r, campaign.OwnerID, models.NotifyDonation, map[string]string{
				"campaignId": campaign.ID.String(),
				"title":      campaign.Title,
				"amount":     strconv.FormatInt(req.Amount, 10),
			})
		}

		respondJSON(w, http.StatusOK, campaign)
	}
}
