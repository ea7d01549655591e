package toast

// StyleID is the id of the injected notification style block.
const StyleID = "notification-styles"

// Styles holds the keyframes and rules banners rely on. It also carries
// the navbar's scrolled state, which ships in the same block.
const Styles = `
@keyframes slideInRight {
  from { transform: translateX(100%); opacity: 0; }
  to { transform: translateX(0); opacity: 1; }
}

@keyframes slideOutRight {
  from { transform: translateX(0); opacity: 1; }
  to { transform: translateX(100%); opacity: 0; }
}

.notification-content {
  display: flex;
  justify-content: space-between;
  align-items: center;
  gap: var(--space-12);
}

.notification-message {
  color: var(--color-text);
  font-size: var(--font-size-sm);
}

.notification-close {
  background: none;
  border: none;
  color: var(--color-text-secondary);
  font-size: var(--font-size-lg);
  cursor: pointer;
  padding: 0;
  line-height: 1;
  transition: color var(--duration-fast) var(--ease-standard);
  width: 24px;
  height: 24px;
  display: flex;
  align-items: center;
  justify-content: center;
}

.notification-close:hover {
  color: var(--color-text);
}

.navbar.scrolled {
  background: rgba(var(--color-slate-900-rgb), 0.98);
  backdrop-filter: blur(20px);
  box-shadow: var(--shadow-md);
}
`
