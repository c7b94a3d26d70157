package api

import "net/http"

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(formPageHTML))
}

const formPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>payqr — Payment Request</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 48px;
    text-align: center;
    max-width: 460px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 8px; }
  .subtitle { color: #888; font-size: 14px; margin-bottom: 24px; }
  label { display: block; text-align: left; font-size: 13px; color: #888; margin: 12px 0 4px; }
  input {
    width: 100%;
    padding: 10px 12px;
    border-radius: 8px;
    border: 1px solid #333;
    background: #111;
    color: #e0e0e0;
    font-size: 14px;
  }
  button {
    margin-top: 20px;
    width: 100%;
    padding: 12px;
    border: none;
    border-radius: 8px;
    background: #4ade80;
    color: #0a0a0a;
    font-size: 15px;
    font-weight: 600;
    cursor: pointer;
  }
  button:disabled { background: #2a5a3a; cursor: default; }
  #qr-container {
    width: 280px; height: 280px;
    margin: 24px auto 12px;
    display: none;
    align-items: center;
    justify-content: center;
    background: #fff;
    border-radius: 12px;
  }
  #qr-container img { width: 260px; height: 260px; }
  #uri { font-size: 12px; color: #888; word-break: break-all; margin-top: 8px; }
  #error { color: #f87171; font-size: 14px; margin-top: 12px; }
  #download { display: none; color: #4ade80; font-size: 14px; margin-top: 12px; }
</style>
</head>
<body>
<div class="card">
  <h1>Payment Request</h1>
  <p class="subtitle">Enter a recipient address and an ETH amount to generate a scannable payment QR code</p>
  <form id="pay-form">
    <label for="address">Recipient address</label>
    <input id="address" type="text" placeholder="0x..." autocomplete="off">
    <label for="amount">Amount (ETH)</label>
    <input id="amount" type="text" placeholder="0.05" autocomplete="off">
    <label for="note">Note (optional)</label>
    <input id="note" type="text" placeholder="Invoice #42" autocomplete="off">
    <button id="submit" type="submit">Generate QR</button>
  </form>
  <div id="qr-container"><img id="qr-img" alt="Payment QR code"></div>
  <div id="uri"></div>
  <a id="download" href="#" download>Download PNG</a>
  <div id="error"></div>
</div>
<script>
(function() {
  var form = document.getElementById('pay-form');
  var submit = document.getElementById('submit');
  var container = document.getElementById('qr-container');
  var img = document.getElementById('qr-img');
  var uriEl = document.getElementById('uri');
  var errorEl = document.getElementById('error');
  var download = document.getElementById('download');
  var generating = false;

  form.addEventListener('submit', function(e) {
    e.preventDefault();
    if (generating) return;
    generating = true;
    submit.disabled = true;
    errorEl.textContent = '';

    fetch('/payments', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({
        address: document.getElementById('address').value,
        amount: document.getElementById('amount').value,
        note: document.getElementById('note').value
      })
    })
      .then(function(r) { return r.json().then(function(data) { return { ok: r.ok, data: data }; }); })
      .then(function(res) {
        if (!res.ok) {
          errorEl.textContent = res.data.error || 'generation failed';
          return;
        }
        // Replace the previous result only after a successful render so a
        // stale URI/image pair is never shown.
        img.setAttribute('src', 'data:image/png;base64,' + res.data.qr_png);
        container.style.display = 'flex';
        uriEl.textContent = res.data.uri;
        download.setAttribute('href', '/payments/' + res.data.id + '/qr.png');
        download.style.display = 'inline';
      })
      .catch(function() {
        errorEl.textContent = 'connection error, please try again';
      })
      .finally(function() {
        generating = false;
        submit.disabled = false;
      });
  });
})();
</script>
</body>
</html>`
