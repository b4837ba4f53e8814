// Package templates is the default notification assembler.
//
// Templates live in YAML catalogs, one entry per type and locale:
//
//	templates:
//	  - type: AccountConfirmation
//	    display_name: Account Confirmation
//	    locale: en-US
//	    content_type: text/html
//	    subject: "{{tenantDomain}} : Account Confirmation"
//	    body: "<p>Hi {{userName}}</p>"
//
// Catalogs come from the embedded default, a local file or directory
// (LoadPath), an fs.FS (LoadFS) or an S3 prefix (LoadS3).
//
// A Store matches the requested locale against the available ones with
// golang.org/x/text/language and falls back to the default locale. The
// Assembler renders {{key}} placeholders from the event's placeholder map
// and resolves the recipient from "sendTo" or "email".
//
// Events without a template type, or raised on a channel the assembler
// does not serve, produce no notification.
package templates
