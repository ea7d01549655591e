// Package config provides configuration parsing for folio sites.
//
// The configuration is stored in folio.yaml next to where folio runs.
// Values are layered with koanf: built-in defaults, then the file, then
// FOLIO_ environment variables. A double underscore separates path
// segments in variable names, so FOLIO_SERVER__PORT=9000 sets server.port.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 3000
//	  heartbeat_interval: 30s
//	page:
//	  header_offset: 80
//	  submit_delay: 1.5s
//	  toast_duration: 5s
//	content:
//	  owner:
//	    name: Alex Morgan
//	  nav:
//	    - section: home
//	      label: Home
//	publish:
//	  bucket: my-site
//	  prefix: portfolio/
//
// Lists under content replace the sample content as a whole; scalar
// fields fall back to the sample when omitted.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Server.Port)
package config
