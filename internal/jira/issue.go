// Package jira talks to the Jira Cloud REST API and normalizes issue
// payloads into the subset of fields shrike renders and annotates.
package jira

import "strings"

// missingField is the sentinel used when the remote record lacks a field.
const missingField = "None"

// Issue is the normalized view of one remote issue. Built fresh per resolve
// call and immutable afterwards.
//
// Resolution is deliberately a pointer: an unresolved issue has no
// resolution at all, which is different from resolution = "None". The
// property annotation layer only emits a resolution line when it is set.
type Issue struct {
	Key         string
	SourceURL   string
	Summary     string
	Status      string
	StatusColor string
	Type        string
	Priority    string
	Creator     string
	Reporter    string
	Assignee    string
	FixVersion  string
	Resolution  *string
}

// issuePayload is the relevant subset of the Jira issue resource.
type issuePayload struct {
	Key    string        `json:"key"`
	Fields fieldsPayload `json:"fields"`
}

type fieldsPayload struct {
	Summary     string        `json:"summary"`
	Status      statusPayload `json:"status"`
	IssueType   *namePayload  `json:"issuetype"`
	Priority    *namePayload  `json:"priority"`
	Creator     *userPayload  `json:"creator"`
	Reporter    *userPayload  `json:"reporter"`
	Assignee    *userPayload  `json:"assignee"`
	FixVersions []namePayload `json:"fixVersions"`
	Resolution  *namePayload  `json:"resolution"`
}

type statusPayload struct {
	Name           string `json:"name"`
	StatusCategory struct {
		Name      string `json:"name"`
		ColorName string `json:"colorName"`
	} `json:"statusCategory"`
}

type namePayload struct {
	Name string `json:"name"`
}

type userPayload struct {
	DisplayName string `json:"displayName"`
}

type searchPayload struct {
	Issues []issuePayload `json:"issues"`
}

// normalize converts a raw payload into an Issue, defaulting absent fields
// to "None" (except Resolution, which stays nil when absent).
func normalize(raw issuePayload, baseURL string) Issue {
	iss := Issue{
		Key:         raw.Key,
		SourceURL:   strings.TrimRight(baseURL, "/") + "/browse/" + raw.Key,
		Summary:     orNone(raw.Fields.Summary),
		Status:      orNone(raw.Fields.Status.Name),
		StatusColor: raw.Fields.Status.StatusCategory.ColorName,
		Type:        nameOrNone(raw.Fields.IssueType),
		Priority:    nameOrNone(raw.Fields.Priority),
		Creator:     userOrNone(raw.Fields.Creator),
		Reporter:    userOrNone(raw.Fields.Reporter),
		Assignee:    userOrNone(raw.Fields.Assignee),
		FixVersion:  missingField,
	}
	if len(raw.Fields.FixVersions) > 0 && raw.Fields.FixVersions[0].Name != "" {
		iss.FixVersion = raw.Fields.FixVersions[0].Name
	}
	if raw.Fields.Resolution != nil && raw.Fields.Resolution.Name != "" {
		r := raw.Fields.Resolution.Name
		iss.Resolution = &r
	}
	return iss
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingField
	}
	return s
}

func nameOrNone(n *namePayload) string {
	if n == nil {
		return missingField
	}
	return orNone(n.Name)
}

func userOrNone(u *userPayload) string {
	if u == nil {
		return missingField
	}
	return orNone(u.DisplayName)
}
