// Package site renders the portfolio page from content.
//
// The markup is the contract the interaction controller in package page
// relies on: element ids (nav-toggle, nav-menu, contact-form, submit-btn,
// view-work-btn, get-in-touch-btn) and marker classes (navbar, hero,
// stat-value, skill-category, project-card, achievement-item, about-text,
// contact-content). Change them together.
//
// The stylesheet ships embedded and is served from StyleSheetPath.
package site
