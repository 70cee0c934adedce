package proofdocs

import "time"

// ProofDocumentResponse is the outward-facing representation of a proof document.
type ProofDocumentResponse struct {
	ProofDocumentID string    `json:"proofDocumentId"`
	OfferID         string    `json:"offerId"`
	FileName        string    `json:"fileName"`
	MimeType        string    `json:"mimeType"`
	SizeBytes       int64     `json:"sizeBytes"`
	Extracted       bool      `json:"extracted"`
	UploadedAt      time.Time `json:"uploadedAt"`
}

func toResponse(doc ProofDocument) ProofDocumentResponse {
	return ProofDocumentResponse{
		ProofDocumentID: doc.ID,
		OfferID:         doc.OfferID,
		FileName:        doc.FileName,
		MimeType:        doc.MimeType,
		SizeBytes:       doc.SizeBytes,
		Extracted:       doc.ExtractedTextKey != "",
		UploadedAt:      doc.CreatedAt,
	}
}
