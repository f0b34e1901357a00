package database

import (
	"strconv"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/query"
)

func idString(id uint64) string { return strconv.FormatUint(id, 10) }

var MemberFamily = query.Family[model.Member]{
	Name:       "members",
	Searchable: []string{"name", "membership_id", "phone", "email", "aadhaar"},
	Filters: []query.Filter{
		{Param: "status", Column: "status", Allowed: model.MemberStatuses},
		{Param: "state", Column: "state"},
		{Param: "district", Column: "district"},
		{Param: "mandal", Column: "mandal"},
	},
	Columns: []query.Column[model.Member]{
		{Header: "Membership ID", Value: func(m *model.Member) string { return m.MembershipID }},
		{Header: "Name", Value: func(m *model.Member) string { return m.Name }},
		{Header: "Phone", Value: func(m *model.Member) string { return m.Phone }},
		{Header: "Email", Value: func(m *model.Member) string { return m.Email }},
		{Header: "Aadhaar", Value: func(m *model.Member) string { return m.Aadhaar }},
		{Header: "State", Value: func(m *model.Member) string { return m.State }},
		{Header: "District", Value: func(m *model.Member) string { return m.District }},
		{Header: "Mandal", Value: func(m *model.Member) string { return m.Mandal }},
		{Header: "Status", Value: func(m *model.Member) string { return string(m.Status) }},
		{Header: "Registration Date", Value: func(m *model.Member) string { return query.FormatTime(m.CreatedAt) }},
	},
}

var ApplicationFamily = query.Family[model.MemberApplication]{
	Name:       "member_applications",
	Searchable: []string{"full_name", "phone_number", "aadhaar_number", "email_address"},
	Filters: []query.Filter{
		{Param: "status", Column: "status", Allowed: model.MemberStatuses},
		{Param: "state", Column: "state"},
		{Param: "district", Column: "district"},
	},
	Columns: []query.Column[model.MemberApplication]{
		{Header: "ID", Value: func(a *model.MemberApplication) string { return idString(a.ID) }},
		{Header: "Full Name", Value: func(a *model.MemberApplication) string { return a.FullName }},
		{Header: "Father/Husband Name", Value: func(a *model.MemberApplication) string { return a.FatherHusbandName }},
		{Header: "Gender", Value: func(a *model.MemberApplication) string { return a.Gender }},
		{Header: "Date of Birth", Value: func(a *model.MemberApplication) string {
			if a.DateOfBirth.IsZero() {
				return ""
			}
			return a.DateOfBirth.Format("02-01-2006")
		}},
		{Header: "Aadhaar", Value: func(a *model.MemberApplication) string { return a.AadhaarNumber }},
		{Header: "Phone", Value: func(a *model.MemberApplication) string { return a.PhoneNumber }},
		{Header: "Email", Value: func(a *model.MemberApplication) string { return a.EmailAddress }},
		{Header: "State", Value: func(a *model.MemberApplication) string { return a.State }},
		{Header: "District", Value: func(a *model.MemberApplication) string { return a.District }},
		{Header: "Mandal", Value: func(a *model.MemberApplication) string { return a.Mandal }},
		{Header: "Village", Value: func(a *model.MemberApplication) string { return a.Village }},
		{Header: "Status", Value: func(a *model.MemberApplication) string { return string(a.Status) }},
		{Header: "Applied Date", Value: func(a *model.MemberApplication) string { return query.FormatTime(a.CreatedAt) }},
	},
}

var DonationFamily = query.Family[model.Donation]{
	Name:       "donations",
	Searchable: []string{"donor_name", "donor_email", "transaction_id"},
	Filters: []query.Filter{
		{Param: "status", Column: "status", Allowed: model.DonationStatuses},
		{Param: "payment_method", Column: "payment_method", Allowed: model.PaymentMethods},
	},
	Columns: []query.Column[model.Donation]{
		{Header: "Donor Name", Value: func(d *model.Donation) string { return d.DonorName }},
		{Header: "Donor Email", Value: func(d *model.Donation) string { return d.DonorEmail }},
		{Header: "Amount", Value: func(d *model.Donation) string { return d.Amount.StringFixed(2) }},
		{Header: "Payment Method", Value: func(d *model.Donation) string { return d.PaymentMethod }},
		{Header: "Transaction ID", Value: func(d *model.Donation) string { return d.TransactionID }},
		{Header: "Status", Value: func(d *model.Donation) string { return string(d.Status) }},
		{Header: "Date", Value: func(d *model.Donation) string { return query.FormatTime(d.CreatedAt) }},
	},
}

var ComplaintFamily = query.Family[model.Complaint]{
	Name:       "complaints",
	Searchable: []string{"complainant_name", "email", "reference_id", "subject"},
	Filters: []query.Filter{
		{Param: "status", Column: "status", Allowed: model.ComplaintStatuses},
		{Param: "type", Column: "type", Allowed: model.ComplaintTypes},
	},
	Columns: []query.Column[model.Complaint]{
		{Header: "Reference ID", Value: func(c *model.Complaint) string { return c.ReferenceID }},
		{Header: "Complainant Name", Value: func(c *model.Complaint) string { return c.ComplainantName }},
		{Header: "Email", Value: func(c *model.Complaint) string { return c.Email }},
		{Header: "Phone", Value: func(c *model.Complaint) string { return c.Phone }},
		{Header: "Type", Value: func(c *model.Complaint) string { return c.Type }},
		{Header: "Subject", Value: func(c *model.Complaint) string { return c.Subject }},
		{Header: "Status", Value: func(c *model.Complaint) string { return string(c.Status) }},
		{Header: "Created Date", Value: func(c *model.Complaint) string { return query.FormatTime(c.CreatedAt) }},
		{Header: "Admin Notes", Value: func(c *model.Complaint) string { return c.AdminNotes }},
	},
}

var GalleryFamily = query.Family[model.GalleryItem]{
	Name:       "gallery",
	Searchable: []string{"title", "description"},
	Filters: []query.Filter{
		{Param: "media_type", Column: "media_type", Allowed: model.MediaTypes},
	},
	Columns: []query.Column[model.GalleryItem]{
		{Header: "ID", Value: func(g *model.GalleryItem) string { return idString(g.ID) }},
		{Header: "Title", Value: func(g *model.GalleryItem) string { return g.Title }},
		{Header: "Description", Value: func(g *model.GalleryItem) string { return g.Description }},
		{Header: "Media Type", Value: func(g *model.GalleryItem) string { return g.MediaType }},
		{Header: "Media URL", Value: func(g *model.GalleryItem) string { return g.MediaURL }},
		{Header: "Created Date", Value: func(g *model.GalleryItem) string { return query.FormatTime(g.CreatedAt) }},
	},
}
