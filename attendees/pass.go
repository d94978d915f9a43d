package attendees

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"evenza/db"
	"evenza/globals"
	"evenza/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// SignPassPayload returns "eventID|uniqueCode|signature" for embedding in the
// pass QR code. Scanners recompute the HMAC to reject forged passes.
func SignPassPayload(eventID, uniqueCode string) string {
	data := fmt.Sprintf("%s|%s", eventID, uniqueCode)
	h := hmac.New(sha256.New, globals.QRSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks the signature of a scanned payload and returns the
// embedded unique code.
func VerifyPassPayload(eventID, payload string) (string, error) {
	parts := bytes.SplitN([]byte(payload), []byte("|"), 3)
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed pass payload")
	}
	gotEventID, uniqueCode, sig := string(parts[0]), string(parts[1]), string(parts[2])
	if gotEventID != eventID {
		return "", fmt.Errorf("pass belongs to a different event")
	}

	data := fmt.Sprintf("%s|%s", gotEventID, uniqueCode)
	h := hmac.New(sha256.New, globals.QRSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return "", fmt.Errorf("invalid pass signature")
	}
	return uniqueCode, nil
}

// DownloadPass serves the attendee's printable ticket pass as a PDF with an
// HMAC-signed QR code.
func DownloadPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	attendeeID := ps.ByName("attendeeid")
	if !ownsEvent(r, eventID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var attendee models.Attendee
	err := db.AttendeesCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "attendeeid": attendeeID}).Decode(&attendee)
	if err != nil {
		http.Error(w, "Attendee not found", http.StatusNotFound)
		return
	}

	var event models.EventRecord
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(SignPassPayload(eventID, attendee.UniqueCode), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Event Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", event.EventName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", attendee.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Tier: %s", attendee.TierPolicy))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Code: %s", attendee.UniqueCode))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+attendee.UniqueCode+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
