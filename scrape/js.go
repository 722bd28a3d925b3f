package scrape

// In-page collector scripts. Each script only gathers raw text and hrefs;
// grouping, layout classification, and date parsing happen host-side in the
// extract package. Every script is an IIFE returning a JSON-compatible value.

// jsHeadlineName returns the h1 text, present in the old layout only.
const jsHeadlineName = `(() => {
	const h1 = document.querySelector('h1');
	return h1 ? h1.textContent.trim() : '';
})()`

// jsLocation tries the old layout's location class first, then walks the top
// card section's p tags. Candidate texts stop at the "Contact info" boundary;
// the last candidate is the location (the first is the headline).
const jsLocation = `(() => {
	const old = document.querySelector('.text-body-small.inline.t-black--light.break-words');
	if (old) {
		const t = old.textContent.trim();
		if (t) return t;
	}
	const main = document.querySelector('[data-view-name="profile-main-level"]');
	const section = main ? main.querySelector('section') : null;
	if (!section) return '';
	const candidates = [];
	for (const p of section.querySelectorAll('p')) {
		const t = p.textContent.trim();
		if (!t || t.length > 80 || t.length < 3) continue;
		if (t.includes('Contact')) break;
		if (t.includes('·') || t.includes('followers') || t.includes('http') ||
			t.includes('Premium') || t.includes('Followed by')) continue;
		candidates.push(t);
	}
	return candidates.length >= 2 ? candidates[candidates.length - 1] : '';
})()`

// jsOpenToWork checks the profile picture's frame annotation.
const jsOpenToWork = `(() => {
	const img = document.querySelector('.pv-top-card-profile-picture img');
	const title = img ? (img.getAttribute('title') || '') : '';
	return title.toUpperCase().includes('#OPEN_TO_WORK');
})()`

// jsAbout locates the About section by its h2 heading. The new layout keeps
// the text in an expandable text box, the old layout in aria-hidden spans.
const jsAbout = `(() => {
	for (const h2 of document.querySelectorAll('h2')) {
		if (h2.textContent.trim() !== 'About') continue;
		const section = h2.closest('section');
		if (!section) continue;
		const textBox = section.querySelector('[data-testid="expandable-text-box"]');
		if (textBox) return textBox.textContent.trim();
		for (const span of section.querySelectorAll('span[aria-hidden="true"]')) {
			const t = span.textContent.trim();
			if (t.length > 20 && t !== 'About') return t;
		}
	}
	return '';
})()`

// sectionEntriesJS builds a collector for an entry section located by its h2
// heading. Anchors come in pairs sharing an href: a logo link with no text
// followed by a detail link carrying the entry's text fragments. Only the
// second of a pair is collected, as raw {href, parts} objects.
func sectionEntriesJS(heading string) string {
	return `(() => {
	for (const h2 of document.querySelectorAll('h2')) {
		if (h2.textContent.trim() !== '` + heading + `') continue;
		const section = h2.closest('section');
		if (!section) continue;
		const seenHrefs = new Map();
		const results = [];
		for (const link of section.querySelectorAll('a')) {
			const href = link.getAttribute('href') || '';
			const text = link.textContent.trim();
			if (!text) {
				seenHrefs.set(href, true);
				continue;
			}
			if (!seenHrefs.has(href)) continue;
			const dv = link.getAttribute('data-view-name') || '';
			if (dv && !dv.includes('logo')) continue;
			let parts = Array.from(link.querySelectorAll('p'))
				.map(p => p.textContent.trim()).filter(t => t);
			if (parts.length < 1) {
				parts = link.innerText.split('\n').map(p => p.trim()).filter(p => p);
			}
			if (parts.length < 2) continue;
			results.push({ href: href, parts: parts });
		}
		return results;
	}
	return [];
})()`
}

// jsInterestEntries collects followed entities from the Interests section as
// raw {name, url} objects. Name cleanup and category classification happen
// host-side.
const jsInterestEntries = `(() => {
	for (const h2 of document.querySelectorAll('h2')) {
		if (h2.textContent.trim() !== 'Interests') continue;
		const section = h2.closest('section');
		if (!section) continue;
		const results = [];
		for (const link of section.querySelectorAll('a[href]')) {
			const href = link.getAttribute('href') || '';
			if (!href || href.includes('#')) continue;
			const firstP = link.querySelector('p');
			let name = firstP ? firstP.textContent.trim() : '';
			if (!name) {
				const lines = link.innerText.split('\n').map(l => l.trim()).filter(l => l);
				name = lines[0] || '';
			}
			if (name) results.push({ name: name, url: href });
		}
		return results;
	}
	return [];
})()`

// jsEmptyDetails reports the placeholder shown on a details sub-page with no
// entries.
const jsEmptyDetails = `(() =>
	document.body.innerText.includes('Nothing to see for now')
)()`

// jsAccomplishmentItems collects one {spans, credentialUrl} object per item
// on a details sub-page, spans in DOM order.
const jsAccomplishmentItems = `(() => {
	const list = document.querySelector('.pvs-list__container, main ul, main ol');
	if (!list) return [];
	let items = Array.from(list.querySelectorAll('.pvs-list__paged-list-item'));
	if (items.length === 0) items = Array.from(list.querySelectorAll(':scope > li'));
	const results = [];
	for (const item of items) {
		const entity = item.querySelector('div[data-view-name="profile-component-entity"]');
		const scope = entity || item;
		const spans = Array.from(scope.querySelectorAll('span[aria-hidden="true"]'))
			.map(s => s.textContent.trim());
		const link = item.querySelector('a[href*="credential"], a[href*="verify"]');
		results.push({
			spans: spans,
			credentialUrl: link ? (link.getAttribute('href') || '') : '',
		});
	}
	return results;
})()`

// jsContactInfo collects links and labeled text entries from the contact
// info overlay dialog. Non-link contacts (birthday, phone, address) are
// matched against the dialog's flattened text and arrive pre-typed.
const jsContactInfo = `(() => {
	const el = document.querySelector('dialog, [role="dialog"]');
	if (!el) return [];
	const results = [];
	for (const link of el.querySelectorAll('a[href]')) {
		const href = link.getAttribute('href') || '';
		const text = link.textContent.trim();
		if (!text || href.includes('premium')) continue;
		results.push({ href: href, text: text });
	}
	const fullText = el.innerText;
	const birthday = fullText.match(/Birthday\n+([A-Z][a-z]+ \d{1,2})/);
	if (birthday) results.push({ type: 'birthday', value: birthday[1] });
	const phone = fullText.match(/Phone\n+([\d\s\-+()]+)/);
	if (phone) results.push({ type: 'phone', value: phone[1].trim() });
	const address = fullText.match(/Address\n+(.+?)(?:\n|$)/);
	if (address) results.push({ type: 'address', value: address[1].trim() });
	return results;
})()`
