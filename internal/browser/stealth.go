package browser

// stealthScript masks the usual headless-Chrome giveaways. It runs on
// every new document before any page script.
const stealthScript = `
(() => {
    'use strict';

    if (window.__stealthApplied) {
        return;
    }
    window.__stealthApplied = true;

    try {
        // navigator.webdriver is the first thing every detector checks.
        Object.defineProperty(navigator, 'webdriver', {
            get: () => undefined,
            configurable: true
        });

        // Headless Chrome ships an empty plugins array.
        Object.defineProperty(navigator, 'plugins', {
            get: () => [
                { name: 'Chrome PDF Plugin' },
                { name: 'Chrome PDF Viewer' },
                { name: 'Native Client' }
            ],
            configurable: true
        });

        Object.defineProperty(navigator, 'languages', {
            get: () => ['en-US', 'en'],
            configurable: true
        });

        // Real Chrome always exposes a chrome runtime object.
        if (!window.chrome) {
            window.chrome = { runtime: {} };
        }

        // Notification permission query is inconsistent in headless mode.
        // The native method must stay bound to its receiver or passthrough
        // calls throw Illegal invocation.
        const originalQuery = window.navigator.permissions.query.bind(window.navigator.permissions);
        window.navigator.permissions.query = (parameters) => (
            parameters.name === 'notifications'
                ? Promise.resolve({ state: Notification.permission })
                : originalQuery(parameters)
        );
    } catch (e) {
        // A failed patch is better than a thrown error during page load.
    }
})();
`
